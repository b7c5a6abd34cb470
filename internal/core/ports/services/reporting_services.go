package services

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// ReportingSvcFacade defines the dashboard aggregation operations.
type ReportingSvcFacade interface {
	// MonthlyFlow returns one row per calendar month in [from, to], months
	// without entries included with zero totals.
	MonthlyFlow(ctx context.Context, from, to time.Time) ([]domain.MonthlyFlowRow, error)

	// ObligationSummary aggregates pending and overdue obligations of one
	// direction as of the given day.
	ObligationSummary(ctx context.Context, direction domain.ObligationDirection, asOf time.Time) (*domain.ObligationSummary, error)
}
