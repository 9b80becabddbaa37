package services

import (
	"context"
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// APITokenSvc defines operations for integration token management
type APITokenSvc interface {
	// CreateToken generates a new API token for the user. Returns the
	// plaintext token (only shown once) and the token details.
	CreateToken(ctx context.Context, userID, name string, expiresIn *time.Duration) (string, *domain.APIToken, error)

	// ListTokens returns all API tokens for a user.
	ListTokens(ctx context.Context, userID string) ([]domain.APIToken, error)

	// RevokeToken deletes a specific API token owned by the user.
	RevokeToken(ctx context.Context, userID, tokenID string) error

	// ValidateToken checks a plaintext token and returns the user it belongs
	// to, stamping last_used_at on success.
	ValidateToken(ctx context.Context, tokenString string) (*domain.UserProfile, error)
}
