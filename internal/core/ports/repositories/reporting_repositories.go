package repositories

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// ReportingRepository defines the aggregate queries behind the dashboard.
type ReportingRepository interface {
	// GetMonthlyFlowTotals returns per-month income and expense totals for
	// entries dated within [from, to]. Months with no entries are absent from
	// the result; the service fills the gaps.
	GetMonthlyFlowTotals(ctx context.Context, from, to time.Time) ([]domain.MonthlyFlowRow, error)
}

// Repositories bundles every repository the service layer needs.
type Repositories struct {
	Obligation ObligationRepository
	CashFlow   CashFlowRepository
	Category   CategoryRepository
	Account    FinancialAccountRepository
	Card       CardRepository
	Task       TaskRepository
	User       UserRepository
	Reporting  ReportingRepository
}
