package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/platform/config"
)

const oauthStateCookie = "oauth_state"

type googleOAuthHandler struct {
	cfg         *config.Config
	services    *portssvc.ServiceContainer
	authHandler *authHandler
}

func newGoogleOAuthHandler(cfg *config.Config, services *portssvc.ServiceContainer, authHandler *authHandler) *googleOAuthHandler {
	return &googleOAuthHandler{cfg: cfg, services: services, authHandler: authHandler}
}

// GoogleLogin godoc
// @Summary Start the Google OAuth flow
// @Description Redirects to Google's consent page with a CSRF state cookie
// @Tags auth
// @Success 307
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.services.GoogleOAuthHandler.GenerateStateString(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 300, "/auth", "", h.cfg.IsProduction, true)

	url := h.services.GoogleOAuthHandler.GetGoogleLoginURL(c.Request.Context(), state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback godoc
// @Summary Complete the Google OAuth flow
// @Description Exchanges the authorization code, creates the profile on first sign-in and redirects to the frontend with a session
// @Tags auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 307
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid oauth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/auth", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "authorization code is required"})
		return
	}

	token, err := h.services.GoogleOAuthHandler.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}

	info, err := h.services.GoogleOAuthHandler.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.services.User.GetOrCreateFromGoogle(c.Request.Context(), *info)
	if err != nil {
		respondError(c, err)
		return
	}

	h.redirectWithSession(c, user)
}

// GoogleTokenSignIn godoc
// @Summary Sign in with a Google ID token
// @Description Validates an ID token obtained client-side and returns a session
// @Tags auth
// @Accept json
// @Produce json
// @Param request body handlers.googleTokenRequest true "ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/token [post]
func (h *googleOAuthHandler) GoogleTokenSignIn(c *gin.Context) {
	var req googleTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	payload, err := h.services.GoogleOAuthHandler.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	info := domain.GoogleUserInfo{
		ID:    payload.Subject,
		Email: stringClaim(payload.Claims, "email"),
		Name:  stringClaim(payload.Claims, "name"),
	}

	user, err := h.services.User.GetOrCreateFromGoogle(c.Request.Context(), info)
	if err != nil {
		respondError(c, err)
		return
	}

	h.authHandler.issueSession(c, user)
}

type googleTokenRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

func stringClaim(claims map[string]any, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

// redirectWithSession issues tokens and sends the browser back to the
// frontend callback route.
func (h *googleOAuthHandler) redirectWithSession(c *gin.Context, user *domain.UserProfile) {
	accessToken, _, err := h.services.TokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}

	refreshToken, refreshExpiry, err := h.services.TokenService.GenerateRefreshToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err)
		return
	}
	h.authHandler.setRefreshCookie(c, refreshToken, int(time.Until(refreshExpiry).Seconds()))

	redirectURL := fmt.Sprintf("%s/auth/callback?token=%s&user_id=%s", h.cfg.FrontendBaseURL, accessToken, user.UserID)
	c.Redirect(http.StatusTemporaryRedirect, redirectURL)
}
