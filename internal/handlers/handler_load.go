package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type loadHandler struct {
	services *portssvc.ServiceContainer
}

func newLoadHandler(services *portssvc.ServiceContainer) *loadHandler {
	return &loadHandler{services: services}
}

// ListLoads godoc
// @Summary List loads
// @Description Lists loads visible to the caller, ordered by ship request date descending, cursor-paginated
// @Tags loads
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param next_token query string false "Pagination cursor"
// @Param status query string false "Filter by status" Enums(Open, Ready, Assigned, Shipped, Closed, Cancelled)
// @Success 200 {object} dto.ListLoadsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads [get]
func (h *loadHandler) ListLoads(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	var params dto.ListLoadsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	loads, nextToken, err := h.services.Load.ListLoads(c.Request.Context(), *profile, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoadsResponse(loads, nextToken))
}

// GetLoad godoc
// @Summary Get a load
// @Tags loads
// @Produce json
// @Param loadID path string true "Load ID"
// @Success 200 {object} dto.LoadResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID} [get]
func (h *loadHandler) GetLoad(c *gin.Context) {
	load, err := h.services.Load.GetLoadByID(c.Request.Context(), c.Param("loadID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoadResponse(load))
}

// UpdateLoad godoc
// @Summary Update a load
// @Description Applies a partial update. Setting or clearing the driver may derive a status transition; audit trail failures surface as warnings
// @Tags loads
// @Accept json
// @Produce json
// @Param loadID path string true "Load ID"
// @Param request body dto.UpdateLoadRequest true "Fields to update"
// @Success 200 {object} dto.UpdateLoadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID} [patch]
func (h *loadHandler) UpdateLoad(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	var req dto.UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	// Explicit status changes are an admin operation; operators drive status
	// through driver assignment and confirmation.
	if req.Status != nil && profile.Role != domain.RoleAdmin {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "admin role required to set status directly"})
		return
	}

	load, warnings, err := h.services.Load.UpdateLoad(c.Request.Context(), c.Param("loadID"), req.ToDomainPatch(), *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UpdateLoadResponse{Load: dto.ToLoadResponse(load), Warnings: warnings})
}

// ConfirmLoad godoc
// @Summary Confirm a load
// @Description Validates the confirmation gate, persists the trailer number and moves the load to Ready
// @Tags loads
// @Accept json
// @Produce json
// @Param loadID path string true "Load ID"
// @Param request body dto.ConfirmLoadRequest true "Confirmation details"
// @Success 200 {object} dto.ConfirmLoadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/confirm [post]
func (h *loadHandler) ConfirmLoad(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	var req dto.ConfirmLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	load, warnings, err := h.services.Load.ConfirmLoad(c.Request.Context(), c.Param("loadID"), req.TrailerNo, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ConfirmLoadResponse{
		Load:        dto.ToLoadResponse(load),
		IsConfirmed: load.Status != domain.StatusOpen,
		Warnings:    warnings,
	})
}

// BulkUpdateStatus godoc
// @Summary Bulk status update
// @Description Sets the status on multiple loads, reporting per-load failures
// @Tags loads
// @Accept json
// @Produce json
// @Param request body dto.BulkStatusUpdateRequest true "Load IDs and target status"
// @Success 200 {object} dto.BulkStatusUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} dto.BulkStatusUpdateResponse
// @Security BearerAuth
// @Router /api/v1/loads/bulk-status [post]
func (h *loadHandler) BulkUpdateStatus(c *gin.Context) {
	profile, ok := requireAdmin(c, h.services)
	if !ok {
		return
	}

	var req dto.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	status, parsed := domain.ParseLoadStatus(req.Status)
	if !parsed {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown status"})
		return
	}

	result, err := h.services.Load.BulkUpdateStatus(c.Request.Context(), req.LoadIDs, status, *profile)
	if err != nil {
		// When every update failed the result still names the failed loads,
		// so return it instead of a bare error body.
		if errors.Is(err, apperrors.ErrPartialFailure) {
			c.JSON(http.StatusUnprocessableEntity, result)
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLoadDetails godoc
// @Summary List line items for a load
// @Tags loads
// @Produce json
// @Param loadID path string true "Load ID"
// @Success 200 {array} dto.LoadDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/details [get]
func (h *loadHandler) GetLoadDetails(c *gin.Context) {
	details, err := h.services.Load.GetLoadDetails(c.Request.Context(), c.Param("loadID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoadDetailResponse(details))
}

// GetLoadStops godoc
// @Summary List stops for a load
// @Tags loads
// @Produce json
// @Param loadID path string true "Load ID"
// @Success 200 {array} dto.StopDetailResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/stops [get]
func (h *loadHandler) GetLoadStops(c *gin.Context) {
	stops, err := h.services.Load.GetLoadStops(c.Request.Context(), c.Param("loadID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListStopDetailResponse(stops))
}

// UpdateLineItem godoc
// @Summary Update a line item
// @Description Edits a line item's status, markoff reason or shipped quantity while the load is still Open
// @Tags loads
// @Accept json
// @Produce json
// @Param detailID path string true "Detail ID"
// @Param request body dto.UpdateLoadDetailRequest true "Fields to update"
// @Success 200 {object} dto.LoadDetailResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/load-details/{detailID} [patch]
func (h *loadHandler) UpdateLineItem(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	var req dto.UpdateLoadDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	detail, err := h.services.Load.UpdateLineItem(c.Request.Context(), c.Param("detailID"), req, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToLoadDetailResponse(detail))
}
