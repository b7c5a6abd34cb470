package dto

import (
	"time"

	"github.com/contaflux/contaflux_backend/internal/core/domain"
)

// MonthlyFlowParams defines the date range for the dashboard chart.
type MonthlyFlowParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// MonthlyFlowResponse wraps the chart rows.
type MonthlyFlowResponse struct {
	Rows []domain.MonthlyFlowRow `json:"rows"`
}

// ObligationSummaryResponse wraps the per-direction obligation aggregates.
type ObligationSummaryResponse struct {
	Payable    *domain.ObligationSummary `json:"payable,omitempty"`
	Receivable *domain.ObligationSummary `json:"receivable,omitempty"`
}
