package services

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// ObligationSvcFacade defines the obligation engine surface: installment
// planning, CRUD, and group-aware deletion.
type ObligationSvcFacade interface {
	// PlanInstallments expands a plan request into unsaved obligations. Pure:
	// nothing is persisted.
	PlanInstallments(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error)

	// CreateObligations plans and persists the batch sequentially in ascending
	// due-date order. Persistence is best-effort: a mid-batch store failure
	// returns the obligations created so far together with the error.
	CreateObligations(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error)

	// GetObligationByID retrieves one obligation.
	GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error)

	// ListObligations retrieves obligations of one direction.
	ListObligations(ctx context.Context, direction domain.ObligationDirection, params dto.ListObligationsParams) ([]domain.Obligation, error)

	// UpdateObligation applies a partial update to a pending obligation.
	UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error)

	// DeleteObligation removes one obligation, or its whole installment group
	// when cascadeToGroup is set. Returns the number deleted; a partial
	// cascade returns the count alongside an *apperrors.PartialCascadeError.
	DeleteObligation(ctx context.Context, obligationID string, cascadeToGroup bool) (int, error)
}

// SettlementSvcFacade transitions obligations from PENDING to SETTLED and
// records the mirrored cash-flow entry.
type SettlementSvcFacade interface {
	// Settle marks the obligation settled on settlementDate and creates the
	// corresponding cash-flow entry. An already settled obligation fails with
	// apperrors.ErrAlreadySettled and creates nothing. When the status update
	// lands but the ledger write fails, the obligation is returned together
	// with an *apperrors.SettlementLedgerError.
	Settle(ctx context.Context, obligationID string, settlementDate time.Time, userID string) (*domain.Obligation, *domain.CashFlowEntry, error)
}
