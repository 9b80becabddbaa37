package dto

import (
	"time"

	"github.com/willbanks/load-coordinator/internal/core/domain"
)

// CreateAPITokenRequest defines the data for minting a new integration token.
type CreateAPITokenRequest struct {
	Name      string `json:"name" binding:"required"`
	ExpiresIn string `json:"expiresIn"` // optional Go duration string, e.g. "720h"
}

// APITokenResponse defines the data returned for an integration token.
// The plaintext token only ever appears in CreateAPITokenResponse.
type APITokenResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	LastUsedAt *time.Time `json:"lastUsedAt,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreateAPITokenResponse carries the one-time plaintext token.
type CreateAPITokenResponse struct {
	Token    string           `json:"token"`
	Metadata APITokenResponse `json:"metadata"`
}

// ToAPITokenResponse converts a domain.APIToken to APITokenResponse DTO
func ToAPITokenResponse(t *domain.APIToken) APITokenResponse {
	return APITokenResponse{
		ID:         t.ID,
		Name:       t.Name,
		LastUsedAt: t.LastUsedAt,
		ExpiresAt:  t.ExpiresAt,
		CreatedAt:  t.CreatedAt,
	}
}

// ToListAPITokenResponse converts a slice of domain.APIToken to DTOs
func ToListAPITokenResponse(tokens []domain.APIToken) []APITokenResponse {
	res := make([]APITokenResponse, len(tokens))
	for i := range tokens {
		res[i] = ToAPITokenResponse(&tokens[i])
	}
	return res
}
