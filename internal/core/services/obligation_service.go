package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portsrepo "github.com/contaflux/contaflux_backend/internal/core/ports/repositories"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
	"github.com/contaflux/contaflux_backend/internal/utils/schedule"
)

// Installment plans are capped as product policy, not a technical limit.
const maxInstallments = 24

var (
	ErrInstallmentCountRange = errors.New("installment count must be between 1 and 24")
	ErrNonPositiveAmount     = errors.New("total amount must be strictly positive")
	ErrSettledImmutable      = errors.New("settled obligations cannot be edited")
)

// obligationService implements installment planning, obligation CRUD and
// group-aware deletion over the obligation repository.
type obligationService struct {
	obligationRepo portsrepo.ObligationRepository
}

// NewObligationService creates a new ObligationService.
func NewObligationService(obligationRepo portsrepo.ObligationRepository) portssvc.ObligationSvcFacade {
	return &obligationService{obligationRepo: obligationRepo}
}

// Ensure obligationService implements the facade.
var _ portssvc.ObligationSvcFacade = (*obligationService)(nil)

// PlanInstallments expands a creation request into unsaved obligations.
// A single-installment request yields one standalone obligation with no group
// id; a multi-installment request spreads the total across the cadence dates
// under a fresh group id. Per-installment amounts are the total divided by the
// count rounded to cents, with the last installment absorbing the rounding
// remainder so the group always sums back to the requested total.
func (s *obligationService) PlanInstallments(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error) {
	count := 1
	if req.InstallmentCount != nil {
		count = *req.InstallmentCount
	}
	if count < 1 || count > maxInstallments {
		return nil, fmt.Errorf("%w: %w (got %d)", apperrors.ErrValidation, ErrInstallmentCountRange, count)
	}
	if req.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %w (got %s)", apperrors.ErrValidation, ErrNonPositiveAmount, req.TotalAmount)
	}

	frequency := req.Frequency
	if frequency == "" {
		frequency = domain.Monthly
	}

	dueDates, err := schedule.Dates(req.DueDate, count, frequency)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.NewAuditFields(creatorUserID, now)

	if count == 1 {
		return []domain.Obligation{{
			ObligationID:     uuid.NewString(),
			Description:      req.Description,
			Amount:           req.TotalAmount,
			DueDate:          dueDates[0],
			Direction:        req.Direction,
			Status:           domain.StatusPending,
			CategoryID:       req.CategoryID,
			LinkedAccountID:  req.LinkedAccountID,
			ContactReference: req.ContactReference,
			AuditFields:      audit,
		}}, nil
	}

	groupID := uuid.NewString()
	perInstallment := req.TotalAmount.DivRound(decimal.NewFromInt(int64(count)), 2)
	// Last installment absorbs the remainder left by rounding to cents.
	lastAmount := req.TotalAmount.Sub(perInstallment.Mul(decimal.NewFromInt(int64(count - 1))))

	obligations := make([]domain.Obligation, count)
	for i := 0; i < count; i++ {
		amount := perInstallment
		if i == count-1 {
			amount = lastAmount
		}
		obligations[i] = domain.Obligation{
			ObligationID:       uuid.NewString(),
			Description:        fmt.Sprintf("%s - Parcela %d/%d", req.Description, i+1, count),
			Amount:             amount,
			DueDate:            dueDates[i],
			Direction:          req.Direction,
			Status:             domain.StatusPending,
			CategoryID:         req.CategoryID,
			LinkedAccountID:    req.LinkedAccountID,
			InstallmentGroupID: &groupID,
			ContactReference:   req.ContactReference,
			AuditFields:        audit,
		}
	}
	return obligations, nil
}

// CreateObligations plans the batch and persists it sequentially in ascending
// due-date order. The store offers no multi-row transaction, so persistence is
// best-effort: on a mid-batch failure the obligations already created are
// returned together with the error.
func (s *obligationService) CreateObligations(ctx context.Context, req dto.CreateObligationRequest, creatorUserID string) ([]domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	planned, err := s.PlanInstallments(ctx, req, creatorUserID)
	if err != nil {
		return nil, err
	}

	created := make([]domain.Obligation, 0, len(planned))
	for i, obligation := range planned {
		if err := s.obligationRepo.SaveObligation(ctx, obligation); err != nil {
			logger.Error("Failed to save installment, batch incomplete",
				slog.String("obligation_id", obligation.ObligationID),
				slog.Int("saved", len(created)),
				slog.Int("planned", len(planned)),
				slog.String("error", err.Error()))
			return created, fmt.Errorf("failed to save installment %d/%d: %w", i+1, len(planned), err)
		}
		created = append(created, obligation)
	}

	logger.Info("Obligations created", slog.Int("count", len(created)), slog.String("direction", string(req.Direction)))
	return created, nil
}

// GetObligationByID retrieves one obligation.
func (s *obligationService) GetObligationByID(ctx context.Context, obligationID string) (*domain.Obligation, error) {
	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// ListObligations retrieves obligations of one direction. The OVERDUE status
// filter is resolved here: the store only knows PENDING and SETTLED, overdue
// is pending past its due date.
func (s *obligationService) ListObligations(ctx context.Context, direction domain.ObligationDirection, params dto.ListObligationsParams) ([]domain.Obligation, error) {
	filters := portsrepo.ObligationFilters{
		CategoryID: params.CategoryID,
		DueFrom:    params.DueFrom,
		DueTo:      params.DueTo,
	}

	wantOverdue := params.Status != nil && *params.Status == domain.StatusOverdue
	if wantOverdue {
		pending := domain.StatusPending
		filters.Status = &pending
	} else {
		filters.Status = params.Status
	}

	obligations, err := s.obligationRepo.ListObligationsByDirection(ctx, direction, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list obligations: %w", err)
	}

	if wantOverdue {
		today := time.Now().UTC()
		overdue := obligations[:0]
		for _, o := range obligations {
			if o.EffectiveStatus(today) == domain.StatusOverdue {
				overdue = append(overdue, o)
			}
		}
		obligations = overdue
	}
	return obligations, nil
}

// UpdateObligation applies a partial update to a pending obligation.
func (s *obligationService) UpdateObligation(ctx context.Context, obligationID string, req dto.UpdateObligationRequest, updaterUserID string) (*domain.Obligation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	obligation, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}
	if obligation.Status == domain.StatusSettled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrSettledImmutable)
	}

	updated := false
	if req.Description != nil {
		obligation.Description = *req.Description
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrNonPositiveAmount)
		}
		obligation.Amount = *req.Amount
		updated = true
	}
	if req.DueDate != nil {
		obligation.DueDate = *req.DueDate
		updated = true
	}
	if req.CategoryID != nil {
		obligation.CategoryID = req.CategoryID
		updated = true
	}
	if req.LinkedAccountID != nil {
		obligation.LinkedAccountID = req.LinkedAccountID
		updated = true
	}
	if req.ContactReference != nil {
		obligation.ContactReference = *req.ContactReference
		updated = true
	}
	if !updated {
		return obligation, nil
	}

	obligation.Touch(updaterUserID, time.Now().UTC())
	if err := s.obligationRepo.UpdateObligation(ctx, *obligation); err != nil {
		logger.Error("Failed to update obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update obligation %s: %w", obligationID, err)
	}
	return obligation, nil
}

// DeleteObligation removes a single obligation, or every obligation sharing
// its installment group when cascadeToGroup is set. The cascade is sequential
// and best-effort: an individual failure does not stop the rest, successful
// deletions are never rolled back, and the partial result is reported through
// an *apperrors.PartialCascadeError listing the ids that remain.
func (s *obligationService) DeleteObligation(ctx context.Context, obligationID string, cascadeToGroup bool) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, err := s.obligationRepo.FindObligationByID(ctx, obligationID)
	if err != nil {
		return 0, fmt.Errorf("failed to find obligation %s: %w", obligationID, err)
	}

	if !cascadeToGroup || target.InstallmentGroupID == nil {
		if err := s.obligationRepo.DeleteObligation(ctx, obligationID); err != nil {
			return 0, fmt.Errorf("failed to delete obligation %s: %w", obligationID, err)
		}
		logger.Info("Obligation deleted", slog.String("obligation_id", obligationID))
		return 1, nil
	}

	groupID := *target.InstallmentGroupID
	group, err := s.obligationRepo.ListObligationsByGroup(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to list installment group %s: %w", groupID, err)
	}

	deleted := 0
	var failedIDs []string
	var causes []error
	for _, member := range group {
		if err := s.obligationRepo.DeleteObligation(ctx, member.ObligationID); err != nil {
			logger.Warn("Cascade deletion failed for group member",
				slog.String("group_id", groupID),
				slog.String("obligation_id", member.ObligationID),
				slog.String("error", err.Error()))
			failedIDs = append(failedIDs, member.ObligationID)
			causes = append(causes, err)
			continue
		}
		deleted++
	}

	if len(failedIDs) > 0 {
		return deleted, &apperrors.PartialCascadeError{
			GroupID:   groupID,
			Deleted:   deleted,
			FailedIDs: failedIDs,
			Causes:    causes,
		}
	}

	logger.Info("Installment group deleted", slog.String("group_id", groupID), slog.Int("count", deleted))
	return deleted, nil
}
