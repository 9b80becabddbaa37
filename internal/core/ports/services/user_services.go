package services

import (
	"context"
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/dto"
)

// UserReaderSvc defines read operations for user profiles
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.UserProfile, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.UserProfile, error)
}

// UserWriterSvc defines write operations for user profiles
type UserWriterSvc interface {
	// RegisterUser creates a new user with organization and role derived from
	// the email address.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.UserProfile, error)

	// GetOrCreateFromGoogle finds the profile for a Google-authenticated
	// email, creating it with derived defaults on first sign-in.
	GetOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.UserProfile, error)

	// UpdateUser updates an existing profile. Role and filter changes require
	// the requesting user to be an admin.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUser domain.UserProfile) (*domain.UserProfile, error)

	// UpdateRefreshToken stores the refresh token hash and expiry for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error

	// ClearRefreshToken clears the stored refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.UserProfile, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthSvc
}
