package services

import (
	"context"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/contaflux/contaflux_backend/internal/dto"
)

// CashFlowSvcFacade defines income/expense ledger operations.
type CashFlowSvcFacade interface {
	// CreateEntry records a new income or expense entry.
	CreateEntry(ctx context.Context, direction domain.FlowDirection, req dto.CreateCashFlowEntryRequest, creatorUserID string) (*domain.CashFlowEntry, error)

	// RecordSettlementEntry records the entry produced by settling an
	// obligation. Same persistence path as CreateEntry, kept separate so the
	// settlement flow does not go through request-level validation twice.
	RecordSettlementEntry(ctx context.Context, entry domain.CashFlowEntry) (*domain.CashFlowEntry, error)

	// GetEntryByID retrieves one entry.
	GetEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error)

	// ListEntries retrieves entries of one direction, newest first.
	ListEntries(ctx context.Context, direction domain.FlowDirection, params dto.ListCashFlowParams) ([]domain.CashFlowEntry, error)

	// UpdateEntry applies a partial update to an entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateCashFlowEntryRequest, updaterUserID string) (*domain.CashFlowEntry, error)

	// DeleteEntry removes an entry.
	DeleteEntry(ctx context.Context, entryID string) error
}
