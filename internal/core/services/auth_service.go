package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/platform/config"
	"github.com/willbanks/load-coordinator/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

type tokenService struct {
	BaseService
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.UserProfile) (string, time.Time, error) {
	expiresAt := s.now().Add(time.Duration(s.cfg.JWTExpiryMinutes) * time.Minute)
	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTIssuer, expiresAt)
	if err != nil {
		s.LogError(ctx, err, "failed to generate access token", "userID", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.UserProfile) (string, time.Time, error) {
	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "failed to generate refresh token", "userID", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	expiryTime := s.now().Add(time.Duration(s.cfg.RefreshTokenExpiryDays) * 24 * time.Hour)
	tokenHash := utils.HashToken(token)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, tokenHash, expiryTime); err != nil {
		s.LogError(ctx, err, "failed to persist refresh token", "userID", user.UserID)
		return "", time.Time{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return token, expiryTime, nil
}

func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID, refreshTokenString string) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, fmt.Errorf("%w: no refresh token on record", apperrors.ErrUnauthorized)
	}
	if s.now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}

	providedHash := utils.HashToken(refreshTokenString)
	if subtle.ConstantTimeCompare([]byte(providedHash), []byte(user.RefreshTokenHash)) != 1 {
		return nil, fmt.Errorf("%w: refresh token mismatch", apperrors.ErrUnauthorized)
	}

	return user, nil
}

type googleOAuthHandlerService struct {
	BaseService
	cfg         *config.Config
	oauthConfig *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new Google OAuth handler service instance.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
	return &googleOAuthHandlerService{
		cfg:         cfg,
		oauthConfig: oauthConfig,
	}
}

func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		s.LogError(ctx, err, "failed to generate oauth state")
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "failed to exchange oauth code")
		return nil, fmt.Errorf("%w: failed to exchange authorization code", apperrors.ErrUnauthorized)
	}
	return token, nil
}

func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoEndpoint)
	if err != nil {
		s.LogError(ctx, err, "failed to fetch google user info")
		return nil, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		s.LogError(ctx, fmt.Errorf("status %d", resp.StatusCode), "google user info request failed", "body", string(body))
		return nil, fmt.Errorf("%w: google user info request failed", apperrors.ErrUnauthorized)
	}

	var info domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		s.LogError(ctx, err, "failed to decode google user info")
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}
	return &info, nil
}

func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		s.LogError(ctx, err, "failed to validate google id token")
		return nil, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}
	return payload, nil
}
