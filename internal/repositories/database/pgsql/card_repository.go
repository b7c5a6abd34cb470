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

type PgxCardRepository struct {
	pool *pgxpool.Pool
}

// newPgxCardRepository creates a new repository for credit cards.
func newPgxCardRepository(pool *pgxpool.Pool) portsrepo.CardRepository {
	return &PgxCardRepository{pool: pool}
}

// Ensure PgxCardRepository implements portsrepo.CardRepository
var _ portsrepo.CardRepository = (*PgxCardRepository)(nil)

const cardColumns = `card_id, display_name, nickname, brand, issuer, last_four, total_limit, used_amount, is_primary, created_at, created_by, last_updated_at, last_updated_by`

func scanCard(row pgx.Row) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(
		&c.CardID,
		&c.DisplayName,
		&c.Nickname,
		&c.Brand,
		&c.Issuer,
		&c.LastFour,
		&c.TotalLimit,
		&c.UsedAmount,
		&c.IsPrimary,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	return c, err
}

// SaveCard inserts a new card.
func (r *PgxCardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	query := `
		INSERT INTO cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		card.CardID,
		card.DisplayName,
		card.Nickname,
		card.Brand,
		card.Issuer,
		card.LastFour,
		card.TotalLimit,
		card.UsedAmount,
		card.IsPrimary,
		card.CreatedAt,
		card.CreatedBy,
		card.LastUpdatedAt,
		card.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: card with ID %s already exists", apperrors.ErrDuplicate, card.CardID)
		}
		return fmt.Errorf("failed to save card %s: %w", card.CardID, err)
	}
	return nil
}

// FindCardByID retrieves a card by its ID.
func (r *PgxCardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		WHERE card_id = $1;
	`
	c, err := scanCard(r.pool.QueryRow(ctx, query, cardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find card by ID %s: %w", cardID, err)
	}
	return &c, nil
}

// ListCards retrieves all cards, primary card first.
func (r *PgxCardRepository) ListCards(ctx context.Context) ([]domain.Card, error) {
	query := `
		SELECT ` + cardColumns + `
		FROM cards
		ORDER BY is_primary DESC, display_name;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating card rows: %w", err)
	}
	return cards, nil
}

// UpdateCard updates an existing card's details.
func (r *PgxCardRepository) UpdateCard(ctx context.Context, card domain.Card) error {
	query := `
		UPDATE cards
		SET display_name = $2, nickname = $3, brand = $4, issuer = $5, last_four = $6, total_limit = $7, used_amount = $8, is_primary = $9, last_updated_at = $10, last_updated_by = $11
		WHERE card_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		card.CardID,
		card.DisplayName,
		card.Nickname,
		card.Brand,
		card.Issuer,
		card.LastFour,
		card.TotalLimit,
		card.UsedAmount,
		card.IsPrimary,
		card.LastUpdatedAt,
		card.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update card %s: %w", card.CardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCard removes a card.
func (r *PgxCardRepository) DeleteCard(ctx context.Context, cardID string) error {
	query := `DELETE FROM cards WHERE card_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, cardID)
	if err != nil {
		return fmt.Errorf("failed to delete card %s: %w", cardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
