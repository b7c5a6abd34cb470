package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FlowDirection tells whether a cash-flow entry is money in or money out.
type FlowDirection string

const (
	FlowIncome  FlowDirection = "INCOME"
	FlowExpense FlowDirection = "EXPENSE"
)

// CashFlowEntry is a realized income or expense record. Entries are created
// directly by the user or as the side effect of settling an obligation; the
// engine never mutates or deletes them afterwards.
type CashFlowEntry struct {
	EntryID          string          `json:"entryID"` // Primary Key (UUID)
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"` // Positive; precise decimal type
	Date             time.Time       `json:"date"`
	Direction        FlowDirection   `json:"direction"`
	CategoryID       *string         `json:"categoryID"`      // Nullable FK -> categories
	LinkedAccountID  *string         `json:"linkedAccountID"` // Nullable FK -> financial_accounts
	ContactReference string          `json:"contactReference"`
	AuditFields
}
