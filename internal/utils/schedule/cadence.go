// Package schedule generates installment due-date sequences.
package schedule

import (
	"fmt"
	"time"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// Dates returns count due dates starting at start and advancing by the given
// frequency. The first element is always exactly start; each following date is
// derived from the previous one. The result is strictly increasing.
//
// Month-based frequencies keep the day-of-month, clamped to the last valid day
// of the target month (Jan 31 + 1 month = Feb 28/29). time.Time.AddDate rolls
// over instead of clamping, so month steps go through addMonthsClamped.
func Dates(start time.Time, count int, frequency domain.Frequency) ([]time.Time, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: installment count must be at least 1, got %d", apperrors.ErrValidation, count)
	}

	dates := make([]time.Time, count)
	current := dayOf(start)
	dates[0] = current

	for i := 1; i < count; i++ {
		next, err := advance(current, frequency)
		if err != nil {
			return nil, err
		}
		dates[i] = next
		current = next
	}
	return dates, nil
}

func advance(from time.Time, frequency domain.Frequency) (time.Time, error) {
	switch frequency {
	case domain.Weekly:
		return from.AddDate(0, 0, 7), nil
	case domain.Biweekly:
		return from.AddDate(0, 0, 15), nil
	case domain.Monthly:
		return addMonthsClamped(from, 1), nil
	case domain.Bimonthly:
		return addMonthsClamped(from, 2), nil
	case domain.Quarterly:
		return addMonthsClamped(from, 3), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unknown frequency %q", apperrors.ErrValidation, frequency)
	}
}

// addMonthsClamped adds n calendar months keeping the day-of-month, clamping
// to the last day of the target month when the source day does not exist there.
func addMonthsClamped(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	// First day of the target month, then clamp the day.
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := lastDayOfMonth(firstOfTarget); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

func lastDayOfMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
