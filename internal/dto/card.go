package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCardRequest defines the data needed to register a credit card.
type CreateCardRequest struct {
	DisplayName string          `json:"displayName" binding:"required"`
	Nickname    string          `json:"nickname"`
	Brand       string          `json:"brand"`
	Issuer      string          `json:"issuer"`
	LastFour    string          `json:"lastFour" binding:"omitempty,len=4,numeric"`
	TotalLimit  decimal.Decimal `json:"totalLimit" binding:"required"`
	UsedAmount  decimal.Decimal `json:"usedAmount"`
	IsPrimary   bool            `json:"isPrimary"`
}

// UpdateCardRequest defines the fields of a card that can change.
type UpdateCardRequest struct {
	DisplayName *string          `json:"displayName"`
	Nickname    *string          `json:"nickname"`
	TotalLimit  *decimal.Decimal `json:"totalLimit"`
	UsedAmount  *decimal.Decimal `json:"usedAmount"`
	IsPrimary   *bool            `json:"isPrimary"`
}

// CardResponse defines the data returned for a card, including the derived
// availability figures.
type CardResponse struct {
	CardID       string          `json:"cardID"`
	DisplayName  string          `json:"displayName"`
	Nickname     string          `json:"nickname,omitempty"`
	Brand        string          `json:"brand,omitempty"`
	Issuer       string          `json:"issuer,omitempty"`
	LastFour     string          `json:"lastFour,omitempty"`
	TotalLimit   decimal.Decimal `json:"totalLimit"`
	UsedAmount   decimal.Decimal `json:"usedAmount"`
	Available    decimal.Decimal `json:"available"`
	UsagePercent decimal.Decimal `json:"usagePercent"`
	IsPrimary    bool            `json:"isPrimary"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToCardResponse converts a domain.Card to its response DTO.
func ToCardResponse(c *domain.Card) CardResponse {
	return CardResponse{
		CardID:       c.CardID,
		DisplayName:  c.DisplayName,
		Nickname:     c.Nickname,
		Brand:        c.Brand,
		Issuer:       c.Issuer,
		LastFour:     c.LastFour,
		TotalLimit:   c.TotalLimit,
		UsedAmount:   c.UsedAmount,
		Available:    c.Available(),
		UsagePercent: c.UsagePercent(),
		IsPrimary:    c.IsPrimary,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCardResponses converts a slice of cards.
func ToCardResponses(cards []domain.Card) []CardResponse {
	res := make([]CardResponse, len(cards))
	for i := range cards {
		res[i] = ToCardResponse(&cards[i])
	}
	return res
}
