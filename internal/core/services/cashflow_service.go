package services

import (
	"context"
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
)

// cashFlowService implements the income/expense ledger over the cash-flow
// repository.
type cashFlowService struct {
	cashFlowRepo portsrepo.CashFlowRepository
}

// NewCashFlowService creates a new CashFlowService.
func NewCashFlowService(cashFlowRepo portsrepo.CashFlowRepository) portssvc.CashFlowSvcFacade {
	return &cashFlowService{cashFlowRepo: cashFlowRepo}
}

// Ensure cashFlowService implements the facade.
var _ portssvc.CashFlowSvcFacade = (*cashFlowService)(nil)

// CreateEntry records a new income or expense entry.
func (s *cashFlowService) CreateEntry(ctx context.Context, direction domain.FlowDirection, req dto.CreateCashFlowEntryRequest, creatorUserID string) (*domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: entry amount must be positive (got %s)", apperrors.ErrValidation, req.Amount)
	}

	now := time.Now().UTC()
	entry := domain.CashFlowEntry{
		EntryID:          uuid.NewString(),
		Description:      req.Description,
		Amount:           req.Amount,
		Date:             req.Date,
		Direction:        direction,
		CategoryID:       req.CategoryID,
		LinkedAccountID:  req.LinkedAccountID,
		ContactReference: req.ContactReference,
		AuditFields:      domain.NewAuditFields(creatorUserID, now),
	}

	if err := s.cashFlowRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save cash-flow entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Cash-flow entry created", slog.String("entry_id", entry.EntryID), slog.String("direction", string(direction)))
	return &entry, nil
}

// RecordSettlementEntry persists an entry built by the settlement flow. The
// entry arrives fully constructed, so it bypasses request-level validation.
func (s *cashFlowService) RecordSettlementEntry(ctx context.Context, entry domain.CashFlowEntry) (*domain.CashFlowEntry, error) {
	if err := s.cashFlowRepo.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save settlement entry: %w", err)
	}
	return &entry, nil
}

// GetEntryByID retrieves one entry.
func (s *cashFlowService) GetEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error) {
	entry, err := s.cashFlowRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves entries of one direction, newest first.
func (s *cashFlowService) ListEntries(ctx context.Context, direction domain.FlowDirection, params dto.ListCashFlowParams) ([]domain.CashFlowEntry, error) {
	filters := portsrepo.CashFlowFilters{
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
		From:       params.From,
		To:         params.To,
	}
	entries, err := s.cashFlowRepo.ListEntries(ctx, direction, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry applies a partial update to an entry.
func (s *cashFlowService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowEntryRequest, updaterUserID string) (*domain.CashFlowEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.cashFlowRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	updated := false
	if req.Description != nil {
		entry.Description = *req.Description
		updated = true
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: entry amount must be positive", apperrors.ErrValidation)
		}
		entry.Amount = *req.Amount
		updated = true
	}
	if req.Date != nil {
		entry.Date = *req.Date
		updated = true
	}
	if req.CategoryID != nil {
		entry.CategoryID = req.CategoryID
		updated = true
	}
	if req.LinkedAccountID != nil {
		entry.LinkedAccountID = req.LinkedAccountID
		updated = true
	}
	if req.ContactReference != nil {
		entry.ContactReference = *req.ContactReference
		updated = true
	}
	if !updated {
		return entry, nil
	}

	entry.Touch(updaterUserID, time.Now().UTC())
	if err := s.cashFlowRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update cash-flow entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update entry %s: %w", entryID, err)
	}
	return entry, nil
}

// DeleteEntry removes an entry.
func (s *cashFlowService) DeleteEntry(ctx context.Context, entryID string) error {
	if err := s.cashFlowRepo.DeleteEntry(ctx, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	return nil
}
