package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	PgsqlURL     string
	Port         string
	IsProduction bool

	JWTSecret        string
	JWTExpiryMinutes int
	JWTIssuer        string

	RefreshTokenExpiryDays int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	FrontendBaseURL string

	PosthogAPIKey string

	RateLimitPerMinute int64
}

// Load reads configuration from the environment. PGSQL_URL and JWT_SECRET
// are required; everything else has a sensible default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("JWT_EXPIRY_MINUTES", 15)
	v.SetDefault("JWT_ISSUER", "load-coordinator")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DAYS", 7)
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:5173")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 300)

	cfg := &Config{
		PgsqlURL:               v.GetString("PGSQL_URL"),
		Port:                   v.GetString("PORT"),
		IsProduction:           v.GetBool("IS_PRODUCTION"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		JWTExpiryMinutes:       v.GetInt("JWT_EXPIRY_MINUTES"),
		JWTIssuer:              v.GetString("JWT_ISSUER"),
		RefreshTokenExpiryDays: v.GetInt("REFRESH_TOKEN_EXPIRY_DAYS"),
		GoogleClientID:         v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:      v.GetString("GOOGLE_REDIRECT_URL"),
		FrontendBaseURL:        v.GetString("FRONTEND_BASE_URL"),
		PosthogAPIKey:          v.GetString("POSTHOG_API_KEY"),
		RateLimitPerMinute:     v.GetInt64("RATE_LIMIT_PER_MINUTE"),
	}

	if cfg.PgsqlURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
