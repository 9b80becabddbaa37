package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/dto"
	"github.com/willbanks/load-coordinator/internal/middleware"
	"github.com/willbanks/load-coordinator/internal/platform/config"
)

const refreshTokenCookie = "refresh_token"

type authHandler struct {
	cfg      *config.Config
	services *portssvc.ServiceContainer
}

func newAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer) *authHandler {
	return &authHandler{cfg: cfg, services: services}
}

func (h *authHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshTokenCookie, token, maxAge, "/auth", "", h.cfg.IsProduction, true)
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user profile; organization, role and visibility filters are derived from the email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterUserRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.services.User.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary Log in with email and password
// @Description Returns an access token and sets a refresh token cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.services.User.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.issueSession(c, user)
}

// Refresh godoc
// @Summary Refresh the access token
// @Description Rotates the refresh token cookie and returns a fresh access token
// @Tags auth
// @Produce json
// @Param user_id query string true "User ID"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) Refresh(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "refresh token cookie is missing"})
		return
	}

	user, err := h.services.TokenService.ValidateAndParseRefreshToken(c.Request.Context(), userID, refreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, expiresAt, err := h.services.TokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	newRefreshToken, refreshExpiry, err := h.services.TokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setRefreshCookie(c, newRefreshToken, int(time.Until(refreshExpiry).Seconds()))

	c.JSON(http.StatusOK, dto.RefreshTokenResponse{Token: accessToken, ExpiresAt: expiresAt})
}

// Logout godoc
// @Summary Log out
// @Description Clears the refresh token server-side and expires the cookie
// @Tags auth
// @Produce json
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	if err := h.services.User.ClearRefreshToken(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

// issueSession generates both tokens and writes the login response.
func (h *authHandler) issueSession(c *gin.Context, user *domain.UserProfile) {
	accessToken, expiresAt, err := h.services.TokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken, refreshExpiry, err := h.services.TokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	h.setRefreshCookie(c, refreshToken, int(time.Until(refreshExpiry).Seconds()))

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     accessToken,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	})
}
