package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// Labels prefixed to the cash-flow entry created by a settlement.
const (
	settlementLabelPayable    = "Pagamento"
	settlementLabelReceivable = "Recebimento"
)

// settlementService transitions obligations from PENDING to SETTLED and
// records the mirrored cash-flow entry through the cash-flow service.
type settlementService struct {
	obligationRepo portsrepo.ObligationRepository
	cashFlowSvc    portssvc.CashFlowSvcFacade
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(obligationRepo portsrepo.ObligationRepository, cashFlowSvc portssvc.CashFlowSvcFacade) portssvc.SettlementSvcFacade {
	return &settlementService{
		obligationRepo: obligationRepo,
		cashFlowSvc:    cashFlowSvc,
	}
}

// Ensure settlementService implements the facade.
var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// Settle marks a pending obligation as settled on settlementDate and records
// the corresponding cash-flow entry (expense for payables, income for
// receivables).
//
// The status is re-read and checked immediately before mutating: settling an
// already settled obligation fails with ErrAlreadySettled and creates no
// second entry, which also guards the double-click race on "mark as paid".
//
// The status update and the entry creation are two independent store calls.
// When the entry write fails after the update landed, the obligation stays
// SETTLED with no ledger entry; that state is reported through an
// *apperrors.SettlementLedgerError so the caller can surface it precisely
// instead of silently losing the entry.
func (s *settlementService) Settle(ctx context.Context, obligationID string, settlementDate time.Time, userID string) (*domain.Obligation, *domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	if obligation.Status == domain.StatusSettled {
		logger.Warn("Settlement rejected, obligation already settled", slog.String("obligation_id", obligationID))
		return nil, nil, fmt.Errorf("%w: obligation %s", apperrors.ErrAlreadySettled, obligationID)
	}

	now := time.Now().UTC()
	day := time.Date(settlementDate.Year(), settlementDate.Month(), settlementDate.Day(), 0, 0, 0, 0, time.UTC)

	obligation.Status = domain.StatusSettled
	obligation.SettlementDate = &day
	obligation.Touch(userID, now)

	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		logger.Error("Failed to mark obligation settled", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to update obligation %s: %w", obligationID, err)
	}

	label := settlementLabelReceivable
	if obligation.Direction == domain.Payable {
		label = settlementLabelPayable
	}

	entry := domain.CashFlowEntry{
		EntryID:          uuid.NewString(),
		Description:      fmt.Sprintf("%s - %s", label, obligation.Description),
		Amount:           obligation.Amount,
		Date:             day,
		Direction:        obligation.FlowDirection(),
		CategoryID:       obligation.CategoryID,
		LinkedAccountID:  obligation.LinkedAccountID,
		ContactReference: obligation.ContactReference,
		AuditFields:      domain.NewAuditFields(userID, now),
	}

	recorded, err := s.cashFlowSvc.RecordSettlementEntry(ctx, entry)
	if err != nil {
		logger.Error("Obligation settled but cash-flow entry failed",
			slog.String("obligation_id", obligationID),
			slog.String("error", err.Error()))
		return obligation, nil, &apperrors.SettlementLedgerError{ObligationID: obligationID, Cause: err}
	}

	logger.Info("Obligation settled",
		slog.String("obligation_id", obligationID),
		slog.String("entry_id", recorded.EntryID),
		slog.String("direction", string(obligation.Direction)))
	return obligation, recorded, nil
}
