package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
)

// ErrInvertedRange indicates a reporting range whose start is after its end.
var ErrInvertedRange = errors.New("range start is after range end")

const monthKeyLayout = "2006-01"

// reportingService implements the dashboard aggregations.
type reportingService struct {
	reportingRepo  portsrepo.ReportingRepository
	obligationRepo portsrepo.ObligationReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, obligationRepo portsrepo.ObligationReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo:  reportingRepo,
		obligationRepo: obligationRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) MonthlyFlow(ctx context.Context, from, to time.Time) ([]domain.MonthlyFlowRow, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrInvertedRange)
	}

	rows, err := s.reportingRepo.GetMonthlyFlowTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly flow totals: %w", err)
	}

	byMonth := make(map[string]domain.MonthlyFlowRow, len(rows))
	for _, row := range rows {
		byMonth[row.Month] = row
	}

	// One row per month in the range, zero-filled where nothing happened.
	start := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)

	var result []domain.MonthlyFlowRow
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 1, 0) {
		key := cursor.Format(monthKeyLayout)
		row, ok := byMonth[key]
		if !ok {
			row = domain.MonthlyFlowRow{
				Month:   key,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
			}
		}
		row.Net = row.Income.Sub(row.Expense)
		result = append(result, row)
	}
	return result, nil
}

func (s *reportingService) ObligationSummary(ctx context.Context, direction domain.ObligationDirection, asOf time.Time) (*domain.ObligationSummary, error) {
	pending := domain.StatusPending
	obligations, err := s.obligationRepo.ListObligationsByDirection(ctx, direction, portsrepo.ObligationFilters{Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending obligations: %w", err)
	}

	summary := domain.ObligationSummary{
		Direction:    direction,
		PendingTotal: decimal.Zero,
		OverdueTotal: decimal.Zero,
	}
	for i := range obligations {
		o := &obligations[i]
		if o.EffectiveStatus(asOf) == domain.StatusOverdue {
			summary.OverdueCount++
			summary.OverdueTotal = summary.OverdueTotal.Add(o.Amount)
			continue
		}
		summary.PendingCount++
		summary.PendingTotal = summary.PendingTotal.Add(o.Amount)
	}
	return &summary, nil
}
