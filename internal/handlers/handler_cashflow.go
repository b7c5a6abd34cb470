package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contaflux/contaflux_backend/internal/apperrors"
	"github.com/contaflux/contaflux_backend/internal/core/domain"
	portssvc "github.com/contaflux/contaflux_backend/internal/core/ports/services"
	"github.com/contaflux/contaflux_backend/internal/dto"
	"github.com/contaflux/contaflux_backend/internal/middleware"
)

// cashFlowHandler serves one direction of the cash-flow ledger. The same
// handler backs /incomes and /expenses.
type cashFlowHandler struct {
	direction       domain.FlowDirection
	cashFlowService portssvc.CashFlowSvcFacade
}

func newCashFlowHandler(direction domain.FlowDirection, cs portssvc.CashFlowSvcFacade) *cashFlowHandler {
	return &cashFlowHandler{direction: direction, cashFlowService: cs}
}

// registerCashFlowRoutes registers the incomes and expenses route groups.
func registerCashFlowRoutes(rg *gin.RouterGroup, cs portssvc.CashFlowSvcFacade) {
	for path, direction := range map[string]domain.FlowDirection{
		"/incomes":  domain.FlowIncome,
		"/expenses": domain.FlowExpense,
	} {
		h := newCashFlowHandler(direction, cs)
		group := rg.Group(path)
		{
			group.POST("", h.createEntry)
			group.GET("", h.listEntries)
			group.GET("/:id", h.getEntry)
			group.PATCH("/:id", h.updateEntry)
			group.DELETE("/:id", h.deleteEntry)
		}
	}
}

// createEntry godoc
// @Summary Record a cash-flow entry
// @Description Records an income or expense entry, direction taken from the route.
// @Tags cashflow
// @Accept json
// @Produce json
// @Param entry body dto.CreateCashFlowEntryRequest true "Entry details"
// @Success 201 {object} dto.CashFlowEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to record entry"
// @Security BearerAuth
// @Router /expenses [post]
func (h *cashFlowHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashFlowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.cashFlowService.CreateEntry(c.Request.Context(), h.direction, req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create cash-flow entry", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record entry"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToCashFlowEntryResponse(entry))
}

// listEntries godoc
// @Summary List cash-flow entries
// @Description Lists entries of this direction, newest first.
// @Tags cashflow
// @Produce json
// @Param categoryID query string false "Category filter"
// @Param accountID query string false "Account filter"
// @Param from query string false "Date lower bound (YYYY-MM-DD)"
// @Param to query string false "Date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.ListCashFlowResponse
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /expenses [get]
func (h *cashFlowHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCashFlowParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.cashFlowService.ListEntries(c.Request.Context(), h.direction, params)
	if err != nil {
		logger.Error("Failed to list cash-flow entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list entries"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCashFlowResponse{Entries: dto.ToCashFlowEntryResponses(entries)})
}

// getEntry godoc
// @Summary Get a cash-flow entry
// @Tags cashflow
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} dto.CashFlowEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *cashFlowHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	entry, err := h.cashFlowService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to get cash-flow entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a cash-flow entry
// @Tags cashflow
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param entry body dto.UpdateCashFlowEntryRequest true "Fields to update"
// @Success 200 {object} dto.CashFlowEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to update entry"
// @Security BearerAuth
// @Router /expenses/{id} [patch]
func (h *cashFlowHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	var req dto.UpdateCashFlowEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.cashFlowService.UpdateEntry(c.Request.Context(), entryID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update cash-flow entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update entry"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a cash-flow entry
// @Tags cashflow
// @Produce json
// @Param id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *cashFlowHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("id")

	if err := h.cashFlowService.DeleteEntry(c.Request.Context(), entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
			return
		}
		logger.Error("Failed to delete cash-flow entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete entry"})
		return
	}

	c.Status(http.StatusNoContent)
}
