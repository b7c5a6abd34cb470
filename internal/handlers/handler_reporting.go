package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// reportingHandler handles the dashboard aggregation endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the dashboard report routes.
func registerReportingRoutes(rg *gin.RouterGroup, rs portssvc.ReportingSvcFacade) {
	h := newReportingHandler(rs)

	reports := rg.Group("/reports")
	{
		reports.GET("/monthly-flow", h.getMonthlyFlow)
		reports.GET("/obligations-summary", h.getObligationsSummary)
	}
}

// getMonthlyFlow godoc
// @Summary Monthly income/expense chart
// @Description Returns one row per calendar month in [from, to], months without entries zero-filled.
// @Tags reports
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.MonthlyFlowResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/monthly-flow [get]
func (h *reportingHandler) getMonthlyFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.MonthlyFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	rows, err := h.reportingService.MonthlyFlow(c.Request.Context(), params.From, params.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build monthly flow report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.MonthlyFlowResponse{Rows: rows})
}

// getObligationsSummary godoc
// @Summary Open obligation totals
// @Description Aggregates pending and overdue obligations for both directions as of today.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.ObligationSummaryResponse
// @Failure 500 {object} map[string]string "Failed to build report"
// @Security BearerAuth
// @Router /reports/obligations-summary [get]
func (h *reportingHandler) getObligationsSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	today := time.Now().UTC()

	payable, err := h.reportingService.ObligationSummary(c.Request.Context(), domain.Payable, today)
	if err != nil {
		logger.Error("Failed to summarize payables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	receivable, err := h.reportingService.ObligationSummary(c.Request.Context(), domain.Receivable, today)
	if err != nil {
		logger.Error("Failed to summarize receivables", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, dto.ObligationSummaryResponse{Payable: payable, Receivable: receivable})
}
