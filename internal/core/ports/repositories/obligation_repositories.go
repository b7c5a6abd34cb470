package repositories

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// ObligationFilters narrows obligation listings. Nil fields are ignored.
type ObligationFilters struct {
	Status     *domain.ObligationStatus
	CategoryID *string
	DueFrom    *time.Time
	DueTo      *time.Time
}

// ObligationReader defines read operations for obligation data.
type ObligationReader interface {
	// FindObligationByID retrieves a specific obligation by its unique identifier.
	FindObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligationsByGroup retrieves all obligations sharing an installment
	// group id, ordered by due date. Returns an empty slice when none match.
	ListObligationsByGroup(ctx context.Context, groupID string) ([]domain.Obligation, error)

	// ListObligationsByDirection retrieves obligations of one direction,
	// filtered and ordered by due date.
	ListObligationsByDirection(ctx context.Context, direction domain.ObligationDirection, filters ObligationFilters) ([]domain.Obligation, error)
}

// ObligationWriter defines write operations for obligation data.
// No multi-row transactional guarantee is offered: batch callers must treat
// each call as an independent step and tolerate partial success.
type ObligationWriter interface {
	// SaveObligation persists a new obligation.
	SaveObligation(ctx context.Context, obligation domain.Obligation) error

	// UpdateObligation updates an existing obligation's details.
	UpdateObligation(ctx context.Context, obligation domain.Obligation) error

	// DeleteObligation removes an obligation, ErrNotFound when absent.
	DeleteObligation(ctx context.Context, obligationID string) error
}

// ObligationRepository combines all obligation repository operations.
type ObligationRepository interface {
	ObligationReader
	ObligationWriter
}
