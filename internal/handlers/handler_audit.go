package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type auditHandler struct {
	services *portssvc.ServiceContainer
}

func newAuditHandler(services *portssvc.ServiceContainer) *auditHandler {
	return &auditHandler{services: services}
}

// GetLoadHistory godoc
// @Summary Get audit and status history for a load
// @Description Returns field-level audit events and status changes, newest first
// @Tags audit
// @Produce json
// @Param loadID path string true "Load ID"
// @Success 200 {object} dto.LoadHistoryResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/history [get]
func (h *auditHandler) GetLoadHistory(c *gin.Context) {
	loadID := c.Param("loadID")

	if _, err := h.services.Load.GetLoadByID(c.Request.Context(), loadID); err != nil {
		respondError(c, err)
		return
	}

	events, changes, err := h.services.Audit.GetLoadHistory(c.Request.Context(), loadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoadHistoryResponse(events, changes))
}
