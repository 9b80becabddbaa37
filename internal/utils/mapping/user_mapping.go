package mapping

import (
	"database/sql"

	"github.com/willbanks/load-coordinator/internal/core/domain"
	"github.com/willbanks/load-coordinator/internal/models"
)

// ToModelUserProfile converts a domain UserProfile to a model UserProfile
func ToModelUserProfile(d domain.UserProfile) models.UserProfile {
	m := models.UserProfile{
		UserID:         d.UserID,
		Email:          d.Email,
		FullName:       d.FullName,
		Role:           string(d.Role),
		Organization:   string(d.Organization),
		LocationFilter: d.LocationFilter,
		CarrierFilter:  d.CarrierFilter,
		PasswordHash:   d.PasswordHash,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
	if d.RefreshTokenHash != "" {
		m.RefreshTokenHash = sql.NullString{String: d.RefreshTokenHash, Valid: true}
	}
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUserProfile converts a model UserProfile to a domain UserProfile
func ToDomainUserProfile(m models.UserProfile) domain.UserProfile {
	d := domain.UserProfile{
		UserID:         m.UserID,
		Email:          m.Email,
		FullName:       m.FullName,
		Role:           domain.Role(m.Role),
		Organization:   domain.Organization(m.Organization),
		LocationFilter: m.LocationFilter,
		CarrierFilter:  m.CarrierFilter,
		PasswordHash:   m.PasswordHash,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.RefreshTokenHash.Valid {
		d.RefreshTokenHash = m.RefreshTokenHash.String
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}
