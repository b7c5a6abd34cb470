package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	pool *pgxpool.Pool
}

// newReportingRepository creates a new reporting repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{pool: pool}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetMonthlyFlowTotals returns per-month income and expense totals for entries
// dated within [from, to]. Months with no entries produce no row.
func (r *reportingRepository) GetMonthlyFlowTotals(ctx context.Context, from, to time.Time) ([]domain.MonthlyFlowRow, error) {
	query := `
		SELECT
			to_char(date_trunc('month', date), 'YYYY-MM') AS month,
			SUM(CASE WHEN direction = 'INCOME' THEN amount ELSE 0 END) AS income,
			SUM(CASE WHEN direction = 'EXPENSE' THEN amount ELSE 0 END) AS expense
		FROM cash_flow_entries
		WHERE date >= $1 AND date <= $2
		GROUP BY date_trunc('month', date)
		ORDER BY month;
	`
	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly flow totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyFlowRow{}
	for rows.Next() {
		var row domain.MonthlyFlowRow
		if err := rows.Scan(&row.Month, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("error scanning monthly flow row: %w", err)
		}
		row.Net = row.Income.Sub(row.Expense)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly flow rows: %w", err)
	}
	return result, nil
}
