package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
)

type documentHandler struct {
	services *portssvc.ServiceContainer
}

func newDocumentHandler(services *portssvc.ServiceContainer) *documentHandler {
	return &documentHandler{services: services}
}

func streamDocument(c *gin.Context, data []byte, filename, contentType string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// LoadingDoc godoc
// @Summary Download the loading document PDF
// @Tags documents
// @Produce application/pdf
// @Param loadID path string true "Load ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/documents/loading-doc [get]
func (h *documentHandler) LoadingDoc(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	data, filename, err := h.services.Document.RenderLoadingDoc(c.Request.Context(), c.Param("loadID"), *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	streamDocument(c, data, filename, "application/pdf")
}

// BillOfLading godoc
// @Summary Download the bill of lading PDF
// @Tags documents
// @Produce application/pdf
// @Param loadID path string true "Load ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/documents/bill-of-lading [get]
func (h *documentHandler) BillOfLading(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	data, filename, err := h.services.Document.RenderBillOfLading(c.Request.Context(), c.Param("loadID"), *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	streamDocument(c, data, filename, "application/pdf")
}

// ConfirmedCSV godoc
// @Summary Download the confirmed load CSV
// @Tags documents
// @Produce text/csv
// @Param loadID path string true "Load ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/loads/{loadID}/documents/confirmed-csv [get]
func (h *documentHandler) ConfirmedCSV(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	data, filename, err := h.services.Document.RenderConfirmedCSV(c.Request.Context(), c.Param("loadID"), *profile)
	if err != nil {
		respondError(c, err)
		return
	}
	streamDocument(c, data, filename, "text/csv")
}
