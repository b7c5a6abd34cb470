package repositories

import (
	"context"
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// CashFlowFilters narrows cash-flow listings. Nil fields are ignored.
type CashFlowFilters struct {
	CategoryID *string
	AccountID  *string
	From       *time.Time
	To         *time.Time
}

// CashFlowReader defines read operations for cash-flow entries.
type CashFlowReader interface {
	// FindEntryByID retrieves a single entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.CashFlowEntry, error)

	// ListEntries retrieves entries of one direction ordered by date descending.
	ListEntries(ctx context.Context, direction domain.FlowDirection, filters CashFlowFilters) ([]domain.CashFlowEntry, error)
}

// CashFlowWriter defines write operations for cash-flow entries.
type CashFlowWriter interface {
	// SaveEntry persists a new cash-flow entry.
	SaveEntry(ctx context.Context, entry domain.CashFlowEntry) error

	// UpdateEntry updates an existing entry's details.
	UpdateEntry(ctx context.Context, entry domain.CashFlowEntry) error

	// DeleteEntry removes an entry, ErrNotFound when absent.
	DeleteEntry(ctx context.Context, entryID string) error
}

// CashFlowRepository combines all cash-flow repository operations.
type CashFlowRepository interface {
	CashFlowReader
	CashFlowWriter
}
