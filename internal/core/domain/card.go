package domain

import "github.com/shopspring/decimal"

// Card is a credit card tracked for limit usage. Available amount and usage
// percentage are derived from the limit and the used amount, never stored.
type Card struct {
	CardID      string          `json:"cardID"` // Primary Key (UUID)
	DisplayName string          `json:"displayName"`
	Nickname    string          `json:"nickname"` // Nullable
	Brand       string          `json:"brand"`    // e.g. "Visa"
	Issuer      string          `json:"issuer"`
	LastFour    string          `json:"lastFour"`
	TotalLimit  decimal.Decimal `json:"totalLimit"`
	UsedAmount  decimal.Decimal `json:"usedAmount"`
	IsPrimary   bool            `json:"isPrimary"`
	AuditFields
}

// Available returns the unused portion of the card limit.
func (c Card) Available() decimal.Decimal {
	return c.TotalLimit.Sub(c.UsedAmount)
}

// UsagePercent returns used/limit as a percentage, zero when the limit is zero.
func (c Card) UsagePercent() decimal.Decimal {
	if c.TotalLimit.IsZero() {
		return decimal.Zero
	}
	return c.UsedAmount.Div(c.TotalLimit).Mul(decimal.NewFromInt(100)).Round(2)
}
