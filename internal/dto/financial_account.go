package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFinancialAccountRequest defines the data needed to create a wallet.
type CreateFinancialAccountRequest struct {
	Name    string             `json:"name" binding:"required"`
	Kind    domain.AccountKind `json:"kind" binding:"required,oneof=PIX SAVINGS DEBIT CASH CREDIT INVESTMENT"`
	Balance *decimal.Decimal   `json:"balance"` // Opening balance, defaults to zero
}

// UpdateFinancialAccountRequest defines the fields of a wallet that can
// change. Balance updates are explicit user actions; nothing in the engine
// adjusts balances automatically.
type UpdateFinancialAccountRequest struct {
	Name    *string             `json:"name"`
	Kind    *domain.AccountKind `json:"kind" binding:"omitempty,oneof=PIX SAVINGS DEBIT CASH CREDIT INVESTMENT"`
	Balance *decimal.Decimal    `json:"balance"`
}

// FinancialAccountResponse defines the data returned for a wallet.
type FinancialAccountResponse struct {
	AccountID string             `json:"accountID"`
	Name      string             `json:"name"`
	Kind      domain.AccountKind `json:"kind"`
	Balance   decimal.Decimal    `json:"balance"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToFinancialAccountResponse converts a domain.FinancialAccount to its DTO.
func ToFinancialAccountResponse(a *domain.FinancialAccount) FinancialAccountResponse {
	return FinancialAccountResponse{
		AccountID: a.AccountID,
		Name:      a.Name,
		Kind:      a.Kind,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.LastUpdatedAt,
	}
}

// ToFinancialAccountResponses converts a slice of wallets.
func ToFinancialAccountResponses(accounts []domain.FinancialAccount) []FinancialAccountResponse {
	res := make([]FinancialAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToFinancialAccountResponse(&accounts[i])
	}
	return res
}
