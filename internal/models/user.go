package models

import (
	"database/sql"
	"time"
)

// UserProfile is the database representation of an application user.
type UserProfile struct {
	UserID         string `json:"userID" db:"user_id"`
	Email          string `json:"email" db:"email"`
	FullName       string `json:"fullName" db:"full_name"`
	Role           string `json:"role" db:"role"`
	Organization   string `json:"organization" db:"organization"`
	LocationFilter string `json:"locationFilter" db:"location_filter"`
	CarrierFilter  string `json:"carrierFilter" db:"carrier_filter"`
	PasswordHash   string `json:"-" db:"password_hash"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
