package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/willbanks/load-coordinator/internal/utils"
)

// PosthogMiddleware captures an analytics event per authenticated API
// request.
func PosthogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		utils.CaptureEvent(userID, "api_request", map[string]any{
			"method": c.Request.Method,
			"path":   c.FullPath(),
			"status": c.Writer.Status(),
		})
	}
}
