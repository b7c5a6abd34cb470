package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashFlowEntryRequest defines the data needed to record an income or
// expense entry. The direction comes from the route, not the body.
type CreateCashFlowEntryRequest struct {
	Description      string          `json:"description" binding:"required"`
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	Date             time.Time       `json:"date" binding:"required"`
	CategoryID       *string         `json:"categoryID"`
	LinkedAccountID  *string         `json:"linkedAccountID"`
	ContactReference string          `json:"contactReference"`
}

// UpdateCashFlowEntryRequest defines the fields of an entry that can change.
type UpdateCashFlowEntryRequest struct {
	Description      *string          `json:"description"`
	Amount           *decimal.Decimal `json:"amount"`
	Date             *time.Time       `json:"date"`
	CategoryID       *string          `json:"categoryID"`
	LinkedAccountID  *string          `json:"linkedAccountID"`
	ContactReference *string          `json:"contactReference"`
}

// ListCashFlowParams defines query filters for entry listings.
type ListCashFlowParams struct {
	CategoryID *string    `form:"categoryID"`
	AccountID  *string    `form:"accountID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// CashFlowEntryResponse defines the data returned for a cash-flow entry.
type CashFlowEntryResponse struct {
	EntryID          string               `json:"entryID"`
	Description      string               `json:"description"`
	Amount           decimal.Decimal      `json:"amount"`
	Date             time.Time            `json:"date"`
	Direction        domain.FlowDirection `json:"direction"`
	CategoryID       *string              `json:"categoryID,omitempty"`
	LinkedAccountID  *string              `json:"linkedAccountID,omitempty"`
	ContactReference string               `json:"contactReference,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	LastUpdatedAt    time.Time            `json:"lastUpdatedAt"`
}

// ToCashFlowEntryResponse converts a domain.CashFlowEntry to its response DTO.
func ToCashFlowEntryResponse(e *domain.CashFlowEntry) CashFlowEntryResponse {
	return CashFlowEntryResponse{
		EntryID:          e.EntryID,
		Description:      e.Description,
		Amount:           e.Amount,
		Date:             e.Date,
		Direction:        e.Direction,
		CategoryID:       e.CategoryID,
		LinkedAccountID:  e.LinkedAccountID,
		ContactReference: e.ContactReference,
		CreatedAt:        e.CreatedAt,
		LastUpdatedAt:    e.LastUpdatedAt,
	}
}

// ToCashFlowEntryResponses converts a slice of entries.
func ToCashFlowEntryResponses(entries []domain.CashFlowEntry) []CashFlowEntryResponse {
	res := make([]CashFlowEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToCashFlowEntryResponse(&entries[i])
	}
	return res
}

// ListCashFlowResponse wraps an entry listing.
type ListCashFlowResponse struct {
	Entries []CashFlowEntryResponse `json:"entries"`
}
