package domain

import "github.com/shopspring/decimal"

// AccountKind is the wallet type of a financial account.
type AccountKind string

const (
	KindPix        AccountKind = "PIX"
	KindSavings    AccountKind = "SAVINGS"
	KindDebit      AccountKind = "DEBIT"
	KindCash       AccountKind = "CASH"
	KindCredit     AccountKind = "CREDIT"
	KindInvestment AccountKind = "INVESTMENT"
)

// FinancialAccount is a wallet money moves through. Balance is display-only:
// the settlement flow never debits or credits it automatically, the user
// adjusts it through explicit updates.
type FinancialAccount struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Kind      AccountKind     `json:"kind"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}
