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
	"github.com/willbanks/load-coordinator/internal/dto"
	"github.com/willbanks/load-coordinator/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	now      func() time.Time
}

// NewUserService creates a new user service instance.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to fetch user", "userID", userID)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "failed to fetch user by email")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.UserProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.UserProfile, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	org, role, locationFilter, carrierFilter := domain.DeriveProfileDefaults(req.Email)
	now := s.now()

	user := domain.UserProfile{
		UserID:         uuid.NewString(),
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           role,
		Organization:   org,
		LocationFilter: locationFilter,
		CarrierFilter:  carrierFilter,
		PasswordHash:   passwordHash,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "failed to save user")
		}
		return nil, err
	}

	s.LogInfo(ctx, "registered user", "userID", user.UserID, "organization", string(org))
	return &user, nil
}

// GetOrCreateFromGoogle resolves a Google identity to a local profile,
// creating one with derived org defaults on first sign-in.
func (s *userService) GetOrCreateFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.UserProfile, error) {
	if info.Email == "" {
		return nil, fmt.Errorf("%w: google account has no email", apperrors.ErrValidation)
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "failed to look up google user")
		return nil, err
	}

	org, role, locationFilter, carrierFilter := domain.DeriveProfileDefaults(info.Email)
	now := s.now()

	user := domain.UserProfile{
		UserID:         uuid.NewString(),
		Email:          info.Email,
		FullName:       info.Name,
		Role:           role,
		Organization:   org,
		LocationFilter: locationFilter,
		CarrierFilter:  carrierFilter,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost a race with a concurrent first sign-in.
			return s.userRepo.FindUserByEmail(ctx, info.Email)
		}
		s.LogError(ctx, err, "failed to create user from google profile")
		return nil, err
	}

	s.LogInfo(ctx, "created user from google sign-in", "userID", user.UserID, "organization", string(org))
	return &user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUser domain.UserProfile) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	isAdmin := requestingUser.Role == domain.RoleAdmin
	isSelf := requestingUser.UserID == userID

	if !isAdmin && !isSelf {
		return nil, fmt.Errorf("%w: cannot update another user's profile", apperrors.ErrForbidden)
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	// Role and visibility filters are admin-managed.
	if req.Role != nil || req.LocationFilter != nil || req.CarrierFilter != nil {
		if !isAdmin {
			return nil, fmt.Errorf("%w: only admins can change roles and filters", apperrors.ErrForbidden)
		}
		if req.Role != nil {
			switch domain.Role(*req.Role) {
			case domain.RoleAdmin, domain.RoleOperator:
				user.Role = domain.Role(*req.Role)
			default:
				return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *req.Role)
			}
		}
		if req.LocationFilter != nil {
			user.LocationFilter = *req.LocationFilter
		}
		if req.CarrierFilter != nil {
			user.CarrierFilter = *req.CarrierFilter
		}
	}

	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "failed to update user", "userID", userID)
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateRefreshToken(ctx context.Context, userID, refreshTokenHash string, expiryTime time.Time) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, expiryTime); err != nil {
		s.LogError(ctx, err, "failed to update refresh token", "userID", userID)
		return err
	}
	return nil
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		s.LogError(ctx, err, "failed to clear refresh token", "userID", userID)
		return err
	}
	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.UserProfile, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "failed to look up user for authentication")
		return nil, err
	}

	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	return user, nil
}
