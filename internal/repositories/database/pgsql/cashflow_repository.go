package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
)

type PgxCashFlowRepository struct {
	pool *pgxpool.Pool
}

// newPgxCashFlowRepository creates a new repository for cash-flow entries.
func newPgxCashFlowRepository(pool *pgxpool.Pool) portsrepo.CashFlowRepository {
	return &PgxCashFlowRepository{pool: pool}
}

// Ensure PgxCashFlowRepository implements portsrepo.CashFlowRepository
var _ portsrepo.CashFlowRepository = (*PgxCashFlowRepository)(nil)

const cashFlowColumns = `entry_id, description, amount, date, direction, category_id, linked_account_id, contact_reference, created_at, created_by, last_updated_at, last_updated_by`

func scanCashFlowEntry(row pgx.Row) (domain.CashFlowEntry, error) {
	var e domain.CashFlowEntry
	err := row.Scan(
		&e.EntryID,
		&e.Description,
		&e.Amount,
		&e.Date,
		&e.Direction,
		&e.CategoryID,
		&e.LinkedAccountID,
		&e.ContactReference,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// SaveEntry inserts a new cash-flow entry.
func (r *PgxCashFlowRepository) SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	query := `
		INSERT INTO cash_flow_entries (` + cashFlowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.Description,
		entry.Amount,
		entry.Date,
		entry.Direction,
		entry.CategoryID,
		entry.LinkedAccountID,
		entry.ContactReference,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: cash-flow entry with ID %s already exists", apperrors.ErrDuplicate, entry.EntryID)
		}
		return fmt.Errorf("failed to save cash-flow entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a cash-flow entry by its ID.
func (r *PgxCashFlowRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	query := `
		SELECT ` + cashFlowColumns + `
		FROM cash_flow_entries
		WHERE entry_id = $1;
	`
	e, err := scanCashFlowEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cash-flow entry by ID %s: %w", entryID, err)
	}
	return &e, nil
}

// ListEntries retrieves entries of one direction, applying any non-nil
// filters, newest first.
func (r *PgxCashFlowRepository) ListEntries(ctx context.Context, direction domain.FlowDirection, filters portsrepo.CashFlowFilters) ([]domain.CashFlowEntry, error) {
	query := `
		SELECT ` + cashFlowColumns + `
		FROM cash_flow_entries
		WHERE direction = $1
	`
	args := []any{direction}

	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filters.AccountID != nil {
		args = append(args, *filters.AccountID)
		query += fmt.Sprintf(" AND linked_account_id = $%d", len(args))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += " ORDER BY date DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s entries: %w", direction, err)
	}
	defer rows.Close()

	entries := []domain.CashFlowEntry{}
	for rows.Next() {
		e, err := scanCashFlowEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s entry row: %w", direction, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s entry rows: %w", direction, err)
	}
	return entries, nil
}

// UpdateEntry updates an existing cash-flow entry's details.
func (r *PgxCashFlowRepository) UpdateEntry(ctx context.Context, entry domain.CashFlowEntry) error {
	query := `
		UPDATE cash_flow_entries
		SET description = $2, amount = $3, date = $4, category_id = $5, linked_account_id = $6, contact_reference = $7, last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		entry.Description,
		entry.Amount,
		entry.Date,
		entry.CategoryID,
		entry.LinkedAccountID,
		entry.ContactReference,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update cash-flow entry %s: %w", entry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteEntry removes a cash-flow entry.
func (r *PgxCashFlowRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM cash_flow_entries WHERE entry_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete cash-flow entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
