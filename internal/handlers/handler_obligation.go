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

// obligationHandler handles HTTP requests for one direction of obligations.
// The same handler serves /payables and /receivables, the direction is bound
// at registration time.
type obligationHandler struct {
	direction         domain.ObligationDirection
	obligationService portssvc.ObligationSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

func newObligationHandler(direction domain.ObligationDirection, os portssvc.ObligationSvcFacade, ss portssvc.SettlementSvcFacade) *obligationHandler {
	return &obligationHandler{
		direction:         direction,
		obligationService: os,
		settlementService: ss,
	}
}

// registerObligationRoutes registers the payables and receivables route groups.
func registerObligationRoutes(rg *gin.RouterGroup, os portssvc.ObligationSvcFacade, ss portssvc.SettlementSvcFacade) {
	for path, direction := range map[string]domain.ObligationDirection{
		"/payables":    domain.Payable,
		"/receivables": domain.Receivable,
	} {
		h := newObligationHandler(direction, os, ss)
		group := rg.Group(path)
		{
			group.POST("", h.createObligations)
			group.GET("", h.listObligations)
			group.GET("/:id", h.getObligation)
			group.PATCH("/:id", h.updateObligation)
			group.DELETE("/:id", h.deleteObligation)
			group.POST("/:id/settle", h.settleObligation)
		}
	}
}

// createObligations godoc
// @Summary Create an obligation or installment plan
// @Description Creates a single obligation, or spreads the total across up to 24 installments when installmentCount is above 1. Returns every obligation created, including partial batches when the store fails midway.
// @Tags obligations
// @Accept json
// @Produce json
// @Param obligation body dto.CreateObligationRequest true "Obligation details"
// @Success 201 {object} dto.ListObligationsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create obligations"
// @Security BearerAuth
// @Router /payables [post]
func (h *obligationHandler) createObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create obligations", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.Direction = h.direction

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.obligationService.CreateObligations(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating obligations", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create obligations", slog.String("error", err.Error()), slog.Int("created", len(created)))
		// A mid-batch failure still created the earlier installments; report them.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create all installments",
			"created": dto.ToObligationResponses(created, time.Now().UTC()),
		})
		return
	}

	c.JSON(http.StatusCreated, dto.ListObligationsResponse{Obligations: dto.ToObligationResponses(created, time.Now().UTC())})
}

// listObligations godoc
// @Summary List obligations
// @Description Lists obligations of this direction, newest due date last. The status filter accepts PENDING, SETTLED and the derived OVERDUE.
// @Tags obligations
// @Produce json
// @Param status query string false "Status filter (PENDING, SETTLED, OVERDUE)"
// @Param categoryID query string false "Category filter"
// @Param dueFrom query string false "Due date lower bound (YYYY-MM-DD)"
// @Param dueTo query string false "Due date upper bound (YYYY-MM-DD)"
// @Success 200 {object} dto.ListObligationsResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 500 {object} map[string]string "Failed to list obligations"
// @Security BearerAuth
// @Router /payables [get]
func (h *obligationHandler) listObligations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListObligationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	obligations, err := h.obligationService.ListObligations(c.Request.Context(), h.direction, params)
	if err != nil {
		logger.Error("Failed to list obligations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list obligations"})
		return
	}

	c.JSON(http.StatusOK, dto.ListObligationsResponse{Obligations: dto.ToObligationResponses(obligations, time.Now().UTC())})
}

// getObligation godoc
// @Summary Get an obligation
// @Description Retrieves one obligation. Pending obligations past their due date read as OVERDUE.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Success 200 {object} dto.ObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} map[string]string "Failed to retrieve obligation"
// @Security BearerAuth
// @Router /payables/{id} [get]
func (h *obligationHandler) getObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	obligation, err := h.obligationService.GetObligationByID(c.Request.Context(), obligationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
			return
		}
		logger.Error("Failed to get obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve obligation"})
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, time.Now().UTC()))
}

// updateObligation godoc
// @Summary Update a pending obligation
// @Description Applies a partial update. Settled obligations are immutable.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param obligation body dto.UpdateObligationRequest true "Fields to update"
// @Success 200 {object} dto.ObligationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation already settled"
// @Failure 500 {object} map[string]string "Failed to update obligation"
// @Security BearerAuth
// @Router /payables/{id} [patch]
func (h *obligationHandler) updateObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	var req dto.UpdateObligationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	obligation, err := h.obligationService.UpdateObligation(c.Request.Context(), obligationID, req, updaterUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Settled obligations cannot be edited"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToObligationResponse(obligation, time.Now().UTC()))
}

// deleteObligation godoc
// @Summary Delete an obligation
// @Description Deletes one obligation, or its whole installment group when cascadeToGroup=true. A cascade that removes only part of the group reports the ids left behind.
// @Tags obligations
// @Produce json
// @Param id path string true "Obligation ID"
// @Param cascadeToGroup query bool false "Delete every installment in the group"
// @Success 200 {object} dto.DeleteObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 500 {object} dto.DeleteObligationResponse "Cascade incomplete"
// @Security BearerAuth
// @Router /payables/{id} [delete]
func (h *obligationHandler) deleteObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	var params dto.DeleteObligationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	deleted, err := h.obligationService.DeleteObligation(c.Request.Context(), obligationID, params.CascadeToGroup)
	if err != nil {
		var partial *apperrors.PartialCascadeError
		switch {
		case errors.As(err, &partial):
			logger.Warn("Cascade deletion incomplete",
				slog.String("group_id", partial.GroupID),
				slog.Int("deleted", partial.Deleted),
				slog.Int("failed", len(partial.FailedIDs)))
			c.JSON(http.StatusInternalServerError, dto.DeleteObligationResponse{
				Deleted:   partial.Deleted,
				FailedIDs: partial.FailedIDs,
			})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		default:
			logger.Error("Failed to delete obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete obligation"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.DeleteObligationResponse{Deleted: deleted})
}

// settleObligation godoc
// @Summary Settle an obligation
// @Description Marks a pending obligation as settled and records the mirrored cash-flow entry (expense for payables, income for receivables). Settling twice fails with 409 and never duplicates the entry.
// @Tags obligations
// @Accept json
// @Produce json
// @Param id path string true "Obligation ID"
// @Param settlement body dto.SettleObligationRequest false "Settlement date, defaults to today"
// @Success 200 {object} dto.SettleObligationResponse
// @Failure 404 {object} map[string]string "Obligation not found"
// @Failure 409 {object} map[string]string "Obligation already settled"
// @Failure 500 {object} map[string]string "Settlement failed"
// @Security BearerAuth
// @Router /payables/{id}/settle [post]
func (h *obligationHandler) settleObligation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	obligationID := c.Param("id")

	// An empty body is fine, settlement date defaults to today.
	var req dto.SettleObligationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settlementDate := time.Now().UTC()
	if req.SettlementDate != nil {
		settlementDate = *req.SettlementDate
	}

	obligation, entry, err := h.settlementService.Settle(c.Request.Context(), obligationID, settlementDate, userID)
	if err != nil {
		var ledgerErr *apperrors.SettlementLedgerError
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Obligation not found"})
		case errors.Is(err, apperrors.ErrAlreadySettled):
			c.JSON(http.StatusConflict, gin.H{"error": "Obligation already settled"})
		case errors.As(err, &ledgerErr):
			// The obligation is settled but the ledger entry is missing.
			logger.Error("Settlement recorded without ledger entry", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":      "Obligation settled but the cash-flow entry could not be recorded",
				"obligation": dto.ToObligationResponse(obligation, time.Now().UTC()),
			})
		default:
			logger.Error("Failed to settle obligation", slog.String("obligation_id", obligationID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to settle obligation"})
		}
		return
	}

	res := dto.SettleObligationResponse{Obligation: dto.ToObligationResponse(obligation, time.Now().UTC())}
	if entry != nil {
		entryRes := dto.ToCashFlowEntryResponse(entry)
		res.Entry = &entryRes
	}
	c.JSON(http.StatusOK, res)
}
