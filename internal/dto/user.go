package dto

import (
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new coordinator.
// Organization, role, and filters are derived from the email address.
type RegisterUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a profile.
// Pointers distinguish omitted fields from explicit values. Role and filters
// may only be changed by an admin.
type UpdateUserRequest struct {
	FullName       *string `json:"fullName"`
	Role           *string `json:"role" binding:"omitempty,oneof=ADMIN OPERATOR"`
	LocationFilter *string `json:"locationFilter"`
	CarrierFilter  *string `json:"carrierFilter"`
}

// UserResponse defines the data returned for a user profile.
type UserResponse struct {
	UserID         string    `json:"userID"`
	Email          string    `json:"email"`
	FullName       string    `json:"fullName"`
	Role           string    `json:"role"`
	Organization   string    `json:"organization"`
	LocationFilter string    `json:"locationFilter,omitempty"`
	CarrierFilter  string    `json:"carrierFilter,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToUserResponse converts a domain.UserProfile to UserResponse DTO
func ToUserResponse(u *domain.UserProfile) UserResponse {
	return UserResponse{
		UserID:         u.UserID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           string(u.Role),
		Organization:   string(u.Organization),
		LocationFilter: u.LocationFilter,
		CarrierFilter:  u.CarrierFilter,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUsersResponse converts a slice of domain.UserProfile to ListUsersResponse DTO
func ToListUsersResponse(users []domain.UserProfile) ListUsersResponse {
	res := make([]UserResponse, len(users))
	for i := range users {
		res[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: res}
}
