package repositories

import (
	"context"
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// UserReader defines read operations for user profile data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.UserProfile, error)

	// FindUserByEmail retrieves a user by their email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.UserProfile, error)

	// FindUsers retrieves a paginated list of users.
	FindUsers(ctx context.Context, limit int, offset int) ([]domain.UserProfile, error)
}

// UserWriter defines write operations for user profile data
type UserWriter interface {
	// SaveUser persists a new user profile.
	SaveUser(ctx context.Context, user domain.UserProfile) error

	// UpdateUser updates an existing user profile.
	UpdateUser(ctx context.Context, user domain.UserProfile) error

	// UpdateRefreshToken stores the refresh token hash and expiry for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
