package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/willbanks/load-coordinator/internal/apperrors"
	"github.com/willbanks/load-coordinator/internal/core/domain"
	portsrepo "github.com/willbanks/load-coordinator/internal/core/ports/repositories"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/utils"
)

// apiTokenPrefix marks raw tokens so leaked strings are recognizable in scans.
const apiTokenPrefix = "lc_"

type apiTokenService struct {
	BaseService
	tokenRepo portsrepo.APITokenRepository
	userRepo  portsrepo.UserRepositoryFacade
	now       func() time.Time
}

// NewAPITokenService creates a new API token service instance.
func NewAPITokenService(tokenRepo portsrepo.APITokenRepository, userRepo portsrepo.UserRepositoryFacade) portssvc.APITokenSvc {
	return &apiTokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// CreateToken mints a raw token, stores only its hash and returns the raw
// value once. It is not recoverable afterwards.
func (s *apiTokenService) CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error) {
	if name == "" {
		return "", nil, fmt.Errorf("%w: token name is required", apperrors.ErrValidation)
	}

	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "failed to generate api token")
		return "", nil, fmt.Errorf("failed to generate api token: %w", err)
	}
	rawToken := apiTokenPrefix + raw

	now := s.now()
	token := domain.APIToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		TokenHash: utils.HashToken(rawToken),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if expiresIn != nil {
		expiresAt := now.Add(*expiresIn)
		token.ExpiresAt = &expiresAt
	}

	if err := s.tokenRepo.Create(ctx, &token); err != nil {
		s.LogError(ctx, err, "failed to save api token", "userID", userID)
		return "", nil, err
	}

	s.LogInfo(ctx, "created api token", "userID", userID, "tokenID", token.ID)
	return rawToken, &token, nil
}

func (s *apiTokenService) ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error) {
	tokens, err := s.tokenRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "failed to list api tokens", "userID", userID)
		return nil, err
	}
	return tokens, nil
}

func (s *apiTokenService) RevokeToken(ctx context.Context, userID, tokenID string) error {
	token, err := s.tokenRepo.FindByID(ctx, tokenID)
	if err != nil {
		return err
	}
	if token.UserID != userID {
		return fmt.Errorf("%w: token belongs to another user", apperrors.ErrForbidden)
	}

	if err := s.tokenRepo.Delete(ctx, tokenID); err != nil {
		s.LogError(ctx, err, "failed to revoke api token", "tokenID", tokenID)
		return err
	}
	s.LogInfo(ctx, "revoked api token", "userID", userID, "tokenID", tokenID)
	return nil
}

func (s *apiTokenService) ValidateToken(ctx context.Context, tokenString string) (*domain.UserProfile, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: missing api token", apperrors.ErrUnauthorized)
	}

	token, err := s.tokenRepo.FindByTokenHash(ctx, utils.HashToken(tokenString))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid api token", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "failed to look up api token")
		return nil, err
	}

	if token.IsExpired() {
		return nil, fmt.Errorf("%w: api token expired", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: api token owner no longer exists", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if err := s.tokenRepo.TouchLastUsed(ctx, token.ID); err != nil {
		s.LogWarn(ctx, "failed to record api token usage", "tokenID", token.ID)
	}

	return user, nil
}
