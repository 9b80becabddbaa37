package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/middleware"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps application errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrRefreshTokenExpired), errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

// currentProfile resolves the authenticated user's profile. API token auth
// stashes the full profile; JWT auth stores the ID only, so the profile is
// fetched here.
func currentProfile(c *gin.Context, services *portssvc.ServiceContainer) (*domain.UserProfile, bool) {
	if profile, ok := middleware.GetUserProfileFromContext(c); ok {
		return profile, true
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return nil, false
	}

	profile, err := services.User.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authenticated user not found"})
		return nil, false
	}
	return profile, true
}

// requireAdmin resolves the profile and rejects non-admin callers.
func requireAdmin(c *gin.Context, services *portssvc.ServiceContainer) (*domain.UserProfile, bool) {
	profile, ok := currentProfile(c, services)
	if !ok {
		return nil, false
	}
	if profile.Role != domain.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "admin role required"})
		return nil, false
	}
	return profile, true
}
