package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const (
	// loggerKey is the gin context key for the request-scoped logger.
	loggerKey = "logger"
	// loggerCtxKey is the std context key for the request-scoped logger.
	loggerCtxKey contextKey = "logger"
)

// StructuredLoggingMiddleware attaches a request-scoped slog logger to both
// the gin context and the request's context, then logs the request outcome.
func StructuredLoggingMiddleware(base *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		logger := base.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Set(loggerKey, logger)
		ctx := context.WithValue(c.Request.Context(), loggerCtxKey, logger)
		c.Request = c.Request.WithContext(ctx)

		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()

		logger.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// GetLoggerFromContext returns the request-scoped logger from a gin context.
func GetLoggerFromContext(c *gin.Context) *slog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if logger, ok := v.(*slog.Logger); ok {
			return logger
		}
	}
	return slog.Default()
}

// GetLoggerFromCtx returns the request-scoped logger from a std context.
// Returns nil when no logger was attached.
func GetLoggerFromCtx(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return nil
}

// EnrichLogger adds attributes to the request-scoped logger in both contexts.
func EnrichLogger(c *gin.Context, args ...any) {
	logger := GetLoggerFromContext(c).With(args...)
	c.Set(loggerKey, logger)
	ctx := context.WithValue(c.Request.Context(), loggerCtxKey, logger)
	c.Request = c.Request.WithContext(ctx)
}
