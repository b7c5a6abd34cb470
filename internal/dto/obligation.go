package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the data needed to create an obligation or
// an installment plan. An omitted InstallmentCount creates a single standalone
// obligation; anything above 1 spreads TotalAmount across the plan. The
// pointer distinguishes "not provided" from an explicit zero, which is
// rejected as invalid.
type CreateObligationRequest struct {
	Description      string                     `json:"description" binding:"required"`
	TotalAmount      decimal.Decimal            `json:"totalAmount" binding:"required"`
	DueDate          time.Time                  `json:"dueDate" binding:"required"`
	Direction        domain.ObligationDirection `json:"direction" binding:"required,oneof=PAYABLE RECEIVABLE"`
	InstallmentCount *int                       `json:"installmentCount" binding:"omitempty,min=1,max=24"`
	Frequency        domain.Frequency           `json:"frequency" binding:"omitempty,oneof=WEEKLY BIWEEKLY MONTHLY BIMONTHLY QUARTERLY"`
	CategoryID       *string                    `json:"categoryID"`
	LinkedAccountID  *string                    `json:"linkedAccountID"`
	ContactReference string                     `json:"contactReference"`
}

// UpdateObligationRequest defines the fields of a pending obligation that can
// change. Pointers distinguish "not provided" from zero values.
type UpdateObligationRequest struct {
	Description      *string          `json:"description"`
	Amount           *decimal.Decimal `json:"amount"`
	DueDate          *time.Time       `json:"dueDate"`
	CategoryID       *string          `json:"categoryID"`
	LinkedAccountID  *string          `json:"linkedAccountID"`
	ContactReference *string          `json:"contactReference"`
}

// SettleObligationRequest carries the settlement date for marking an
// obligation as paid/received. Defaults to today when absent.
type SettleObligationRequest struct {
	SettlementDate *time.Time `json:"settlementDate"`
}

// DeleteObligationParams controls group-aware deletion.
type DeleteObligationParams struct {
	CascadeToGroup bool `form:"cascadeToGroup,default=false"`
}

// ListObligationsParams defines query filters for obligation listings.
type ListObligationsParams struct {
	Status     *domain.ObligationStatus `form:"status" binding:"omitempty,oneof=PENDING SETTLED OVERDUE"`
	CategoryID *string                  `form:"categoryID"`
	DueFrom    *time.Time               `form:"dueFrom" time_format:"2006-01-02"`
	DueTo      *time.Time               `form:"dueTo" time_format:"2006-01-02"`
}

// ObligationResponse defines the data returned for an obligation. Status is
// the effective display status: pending obligations past their due date read
// as OVERDUE.
type ObligationResponse struct {
	ObligationID       string                     `json:"obligationID"`
	Description        string                     `json:"description"`
	Amount             decimal.Decimal            `json:"amount"`
	DueDate            time.Time                  `json:"dueDate"`
	Direction          domain.ObligationDirection `json:"direction"`
	Status             domain.ObligationStatus    `json:"status"`
	CategoryID         *string                    `json:"categoryID,omitempty"`
	SettlementDate     *time.Time                 `json:"settlementDate,omitempty"`
	LinkedAccountID    *string                    `json:"linkedAccountID,omitempty"`
	InstallmentGroupID *string                    `json:"installmentGroupID,omitempty"`
	ContactReference   string                     `json:"contactReference,omitempty"`
	CreatedAt          time.Time                  `json:"createdAt"`
	LastUpdatedAt      time.Time                  `json:"lastUpdatedAt"`
}

// ToObligationResponse converts a domain.Obligation to its response DTO,
// deriving the display status for the given reference day.
func ToObligationResponse(o *domain.Obligation, today time.Time) ObligationResponse {
	return ObligationResponse{
		ObligationID:       o.ObligationID,
		Description:        o.Description,
		Amount:             o.Amount,
		DueDate:            o.DueDate,
		Direction:          o.Direction,
		Status:             o.EffectiveStatus(today),
		CategoryID:         o.CategoryID,
		SettlementDate:     o.SettlementDate,
		LinkedAccountID:    o.LinkedAccountID,
		InstallmentGroupID: o.InstallmentGroupID,
		ContactReference:   o.ContactReference,
		CreatedAt:          o.CreatedAt,
		LastUpdatedAt:      o.LastUpdatedAt,
	}
}

// ToObligationResponses converts a slice of obligations.
func ToObligationResponses(obligations []domain.Obligation, today time.Time) []ObligationResponse {
	res := make([]ObligationResponse, len(obligations))
	for i := range obligations {
		res[i] = ToObligationResponse(&obligations[i], today)
	}
	return res
}

// ListObligationsResponse wraps an obligation listing.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}

// DeleteObligationResponse reports a deletion, including partial cascades.
type DeleteObligationResponse struct {
	Deleted   int      `json:"deleted"`
	FailedIDs []string `json:"failedIDs,omitempty"`
}

// SettleObligationResponse returns both sides of a settlement.
type SettleObligationResponse struct {
	Obligation ObligationResponse     `json:"obligation"`
	Entry      *CashFlowEntryResponse `json:"entry,omitempty"`
}
