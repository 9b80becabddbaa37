package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
)

type apiTokenHandler struct {
	services *portssvc.ServiceContainer
}

func newAPITokenHandler(services *portssvc.ServiceContainer) *apiTokenHandler {
	return &apiTokenHandler{services: services}
}

// CreateToken godoc
// @Summary Create an API token
// @Description Mints a token for headless clients; the raw value is returned once
// @Tags api-tokens
// @Accept json
// @Produce json
// @Param request body dto.CreateAPITokenRequest true "Token details"
// @Success 201 {object} dto.CreateAPITokenResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/api-tokens [post]
func (h *apiTokenHandler) CreateToken(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	var req dto.CreateAPITokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	var expiresIn *time.Duration
	if req.ExpiresIn != "" {
		d, err := time.ParseDuration(req.ExpiresIn)
		if err != nil || d <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "expires_in must be a positive duration"})
			return
		}
		expiresIn = &d
	}

	raw, token, err := h.services.APIToken.CreateToken(c.Request.Context(), profile.UserID, req.Name, expiresIn)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreateAPITokenResponse{
		Token:    raw,
		Metadata: dto.ToAPITokenResponse(token),
	})
}

// ListTokens godoc
// @Summary List the caller's API tokens
// @Tags api-tokens
// @Produce json
// @Success 200 {array} dto.APITokenResponse
// @Security BearerAuth
// @Router /api/v1/api-tokens [get]
func (h *apiTokenHandler) ListTokens(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	tokens, err := h.services.APIToken.ListTokens(c.Request.Context(), profile.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAPITokenResponse(tokens))
}

// RevokeToken godoc
// @Summary Revoke an API token
// @Tags api-tokens
// @Produce json
// @Param tokenID path string true "Token ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/v1/api-tokens/{tokenID} [delete]
func (h *apiTokenHandler) RevokeToken(c *gin.Context) {
	profile, ok := currentProfile(c, h.services)
	if !ok {
		return
	}

	if err := h.services.APIToken.RevokeToken(c.Request.Context(), profile.UserID, c.Param("tokenID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
