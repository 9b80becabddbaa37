package handlers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type uploadHandler struct {
	services *portssvc.ServiceContainer
}

func newUploadHandler(services *portssvc.ServiceContainer) *uploadHandler {
	return &uploadHandler{services: services}
}

func (h *uploadHandler) openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
		return nil, false
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "could not open uploaded file"})
		return nil, false
	}
	return f, true
}

// ImportLoads godoc
// @Summary Import loads from CSV
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/imports/loads [post]
func (h *uploadHandler) ImportLoads(c *gin.Context) {
	profile, ok := requireAdmin(c, h.services)
	if !ok {
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.services.Import.ImportLoadsCSV(c.Request.Context(), file, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportDetails godoc
// @Summary Import line items from CSV
// @Description Replaces the line items of every load referenced by the file
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/imports/details [post]
func (h *uploadHandler) ImportDetails(c *gin.Context) {
	profile, ok := requireAdmin(c, h.services)
	if !ok {
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.services.Import.ImportDetailsCSV(c.Request.Context(), file, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportStops godoc
// @Summary Import stops from CSV
// @Description Replaces the stops of every load referenced by the file
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/imports/stops [post]
func (h *uploadHandler) ImportStops(c *gin.Context) {
	profile, ok := requireAdmin(c, h.services)
	if !ok {
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.services.Import.ImportStopsCSV(c.Request.Context(), file, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SyncWorkbook godoc
// @Summary Sync loads from an ERP workbook
// @Description Reconciles loads from an .xlsx export; ERP rows never move a load backwards
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel workbook"
// @Success 200 {object} dto.SyncResult
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/imports/erp-sync [post]
func (h *uploadHandler) SyncWorkbook(c *gin.Context) {
	profile, ok := requireAdmin(c, h.services)
	if !ok {
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	result, err := h.services.Import.SyncFromWorkbook(c.Request.Context(), file, *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
