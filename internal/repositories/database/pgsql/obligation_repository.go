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

type PgxObligationRepository struct {
	pool *pgxpool.Pool
}

// newPgxObligationRepository creates a new repository for obligation data.
func newPgxObligationRepository(pool *pgxpool.Pool) portsrepo.ObligationRepository {
	return &PgxObligationRepository{pool: pool}
}

// Ensure PgxObligationRepository implements portsrepo.ObligationRepository
var _ portsrepo.ObligationRepository = (*PgxObligationRepository)(nil)

const obligationColumns = `obligation_id, description, amount, due_date, direction, status, category_id, settlement_date, linked_account_id, installment_group_id, contact_reference, created_at, created_by, last_updated_at, last_updated_by`

func scanObligation(row pgx.Row) (domain.Obligation, error) {
	var o domain.Obligation
	err := row.Scan(
		&o.ObligationID,
		&o.Description,
		&o.Amount,
		&o.DueDate,
		&o.Direction,
		&o.Status,
		&o.CategoryID,
		&o.SettlementDate,
		&o.LinkedAccountID,
		&o.InstallmentGroupID,
		&o.ContactReference,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	return o, err
}

// SaveObligation inserts a new obligation.
func (r *PgxObligationRepository) SaveObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		INSERT INTO obligations (` + obligationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		obligation.ObligationID,
		obligation.Description,
		obligation.Amount,
		obligation.DueDate,
		obligation.Direction,
		obligation.Status,
		obligation.CategoryID,
		obligation.SettlementDate,
		obligation.LinkedAccountID,
		obligation.InstallmentGroupID,
		obligation.ContactReference,
		obligation.CreatedAt,
		obligation.CreatedBy,
		obligation.LastUpdatedAt,
		obligation.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: obligation with ID %s already exists", apperrors.ErrDuplicate, obligation.ObligationID)
		}
		return fmt.Errorf("failed to save obligation %s: %w", obligation.ObligationID, err)
	}
	return nil
}

// FindObligationByID retrieves an obligation by its ID.
func (r *PgxObligationRepository) FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE obligation_id = $1;
	`
	o, err := scanObligation(r.pool.QueryRow(ctx, query, obligationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", obligationID, err)
	}
	return &o, nil
}

// ListObligationsByGroup retrieves every obligation sharing an installment group.
func (r *PgxObligationRepository) ListObligationsByGroup(ctx context.Context, groupID string) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE installment_group_id = $1
		ORDER BY due_date;
	`
	rows, err := r.pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations for group %s: %w", groupID, err)
	}
	defer rows.Close()

	obligations := []domain.Obligation{}
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row for group %s: %w", groupID, err)
		}
		obligations = append(obligations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating obligation rows for group %s: %w", groupID, err)
	}
	return obligations, nil
}

// ListObligationsByDirection retrieves obligations of one direction, applying
// any non-nil filters, ordered by due date.
func (r *PgxObligationRepository) ListObligationsByDirection(ctx context.Context, direction domain.ObligationDirection, filters portsrepo.ObligationFilters) ([]domain.Obligation, error) {
	query := `
		SELECT ` + obligationColumns + `
		FROM obligations
		WHERE direction = $1
	`
	args := []any{direction}

	if filters.Status != nil {
		args = append(args, *filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.CategoryID != nil {
		args = append(args, *filters.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if filters.DueFrom != nil {
		args = append(args, *filters.DueFrom)
		query += fmt.Sprintf(" AND due_date >= $%d", len(args))
	}
	if filters.DueTo != nil {
		args = append(args, *filters.DueTo)
		query += fmt.Sprintf(" AND due_date <= $%d", len(args))
	}
	query += " ORDER BY due_date;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s obligations: %w", direction, err)
	}
	defer rows.Close()

	obligations := []domain.Obligation{}
	for rows.Next() {
		o, err := scanObligation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s obligation row: %w", direction, err)
		}
		obligations = append(obligations, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s obligation rows: %w", direction, err)
	}
	return obligations, nil
}

// UpdateObligation updates an existing obligation's mutable fields.
func (r *PgxObligationRepository) UpdateObligation(ctx context.Context, obligation domain.Obligation) error {
	query := `
		UPDATE obligations
		SET description = $2, amount = $3, due_date = $4, status = $5, category_id = $6, settlement_date = $7, linked_account_id = $8, contact_reference = $9, last_updated_at = $10, last_updated_by = $11
		WHERE obligation_id = $1;
	`
	// direction, installment_group_id and creation audit fields are immutable.
	cmdTag, err := r.pool.Exec(ctx, query,
		obligation.ObligationID,
		obligation.Description,
		obligation.Amount,
		obligation.DueDate,
		obligation.Status,
		obligation.CategoryID,
		obligation.SettlementDate,
		obligation.LinkedAccountID,
		obligation.ContactReference,
		obligation.LastUpdatedAt,
		obligation.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update obligation %s: %w", obligation.ObligationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteObligation removes an obligation.
func (r *PgxObligationRepository) DeleteObligation(ctx context.Context, obligationID string) error {
	query := `DELETE FROM obligations WHERE obligation_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, obligationID)
	if err != nil {
		return fmt.Errorf("failed to delete obligation %s: %w", obligationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
