package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ObligationDirection distinguishes money the user owes from money owed to the user.
type ObligationDirection string

const (
	Payable    ObligationDirection = "PAYABLE"
	Receivable ObligationDirection = "RECEIVABLE"
)

// ObligationStatus is the stored lifecycle state of an obligation.
// OVERDUE is never persisted; it is derived at read time (see EffectiveStatus).
type ObligationStatus string

const (
	StatusPending ObligationStatus = "PENDING"
	StatusSettled ObligationStatus = "SETTLED"
	StatusOverdue ObligationStatus = "OVERDUE"
)

// Frequency is the cadence at which installment due dates advance.
type Frequency string

const (
	Weekly    Frequency = "WEEKLY"
	Biweekly  Frequency = "BIWEEKLY"
	Monthly   Frequency = "MONTHLY"
	Bimonthly Frequency = "BIMONTHLY"
	Quarterly Frequency = "QUARTERLY"
)

// Obligation is a single payable or receivable entry. Obligations created as
// part of a multi-installment plan share a non-nil InstallmentGroupID.
type Obligation struct {
	ObligationID       string              `json:"obligationID"` // Primary Key (UUID)
	Description        string              `json:"description"`
	Amount             decimal.Decimal     `json:"amount"` // Positive; precise decimal type
	DueDate            time.Time           `json:"dueDate"`
	Direction          ObligationDirection `json:"direction"`
	Status             ObligationStatus    `json:"status"`
	CategoryID         *string             `json:"categoryID"`         // Nullable FK -> categories
	SettlementDate     *time.Time          `json:"settlementDate"`     // Set only on transition to SETTLED
	LinkedAccountID    *string             `json:"linkedAccountID"`    // Nullable FK -> financial_accounts
	InstallmentGroupID *string             `json:"installmentGroupID"` // Opaque group token; nil for standalone entries
	ContactReference   string              `json:"contactReference"`   // Free-text contact, passthrough
	AuditFields
}

// EffectiveStatus returns the display status for the given reference day.
// A pending obligation whose due date has passed reads as OVERDUE.
func (o Obligation) EffectiveStatus(today time.Time) ObligationStatus {
	if o.Status != StatusPending {
		return o.Status
	}
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	due := time.Date(o.DueDate.Year(), o.DueDate.Month(), o.DueDate.Day(), 0, 0, 0, 0, time.UTC)
	if due.Before(day) {
		return StatusOverdue
	}
	return StatusPending
}

// FlowDirection returns the cash-flow direction a settlement of this
// obligation produces: paying a payable is an expense, collecting a
// receivable is income.
func (o Obligation) FlowDirection() FlowDirection {
	if o.Direction == Payable {
		return FlowExpense
	}
	return FlowIncome
}
