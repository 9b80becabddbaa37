package repositories

import (
	"context"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// APITokenRepository defines data access for integration tokens. Tokens are
// stored as SHA-256 hashes so validation is a plain equality lookup.
type APITokenRepository interface {
	// Create persists a new API token.
	Create(ctx context.Context, token *domain.APIToken) error

	// FindByID retrieves an API token by its ID.
	FindByID(ctx context.Context, id string) (*domain.APIToken, error)

	// FindByUserID retrieves all API tokens for a specific user.
	FindByUserID(ctx context.Context, userID string) ([]domain.APIToken, error)

	// FindByTokenHash retrieves the token whose stored hash matches.
	FindByTokenHash(ctx context.Context, tokenHash string) (*domain.APIToken, error)

	// TouchLastUsed stamps last_used_at for a token.
	TouchLastUsed(ctx context.Context, id string) error

	// Delete removes an API token by ID.
	Delete(ctx context.Context, id string) error
}
