package domain

import "github.com/shopspring/decimal"

// MonthlyFlowRow is one month's bucketed totals for dashboard charting.
// Month is formatted "2006-01".
type MonthlyFlowRow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// ObligationSummary aggregates the open obligations of one direction.
type ObligationSummary struct {
	Direction    ObligationDirection `json:"direction"`
	PendingCount int                 `json:"pendingCount"`
	PendingTotal decimal.Decimal     `json:"pendingTotal"`
	OverdueCount int                 `json:"overdueCount"`
	OverdueTotal decimal.Decimal     `json:"overdueTotal"`
}
