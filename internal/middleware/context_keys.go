package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/core/domain"
)

const (
	// userIDKey is the gin context key for the authenticated user's ID.
	userIDKey = "userID"
	// userProfileKey is the gin context key for the authenticated profile.
	userProfileKey = "userProfile"
)

// GetUserIDFromContext returns the authenticated user ID, if any.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok
}

// GetUserProfileFromContext returns the authenticated user profile, if any.
// Only the API token middleware resolves the full profile during auth; the
// JWT path stores the ID alone and handlers fetch the profile on demand.
func GetUserProfileFromContext(c *gin.Context) (*domain.UserProfile, bool) {
	v, ok := c.Get(userProfileKey)
	if !ok {
		return nil, false
	}
	profile, ok := v.(*domain.UserProfile)
	return profile, ok
}

func setAuthenticatedUser(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
	EnrichLogger(c, "user_id", userID)
}

func setAuthenticatedProfile(c *gin.Context, profile *domain.UserProfile) {
	c.Set(userProfileKey, profile)
	setAuthenticatedUser(c, profile.UserID)
}
