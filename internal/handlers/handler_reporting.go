package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type reportingHandler struct {
	services *portssvc.ServiceContainer
}

func newReportingHandler(services *portssvc.ServiceContainer) *reportingHandler {
	return &reportingHandler{services: services}
}

// StatusSummary godoc
// @Summary Per-status load counts
// @Description Counts loads by status within the caller's visibility filter
// @Tags reporting
// @Produce json
// @Success 200 {object} dto.StatusSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/reports/status-summary [get]
func (h *reportingHandler) StatusSummary(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	summary, err := h.services.Reporting.StatusSummary(c.Request.Context(), *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
