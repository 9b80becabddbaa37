package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	_ "github.com/willbanks/load-coordinator/cmd/docs"
	"github.com/willbanks/load-coordinator/internal/core/services"
	"github.com/willbanks/load-coordinator/internal/handlers"
	"github.com/willbanks/load-coordinator/internal/middleware"
	"github.com/willbanks/load-coordinator/internal/platform/config"
	"github.com/willbanks/load-coordinator/internal/repositories/database/pgsql"
	"github.com/willbanks/load-coordinator/internal/utils"
	"github.com/willbanks/load-coordinator/pkg/database"
)

// @title Load Coordinator API
// @version 1.0
// @description Multi-tenant load coordination backend: load tracking, confirmation workflow, ERP sync, documents and audit trails.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err.Error())
		os.Exit(1)
	}

	if err := runMigrations(cfg.PgsqlURL); err != nil {
		logger.Error("failed to run migrations", "error", err.Error())
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.NewPgxPool(ctx, cfg.PgsqlURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err.Error())
		os.Exit(1)
	}
	defer database.ClosePgxPool(pool)

	utils.InitPosthog(cfg.PosthogAPIKey)
	defer utils.ClosePosthog()

	repos := pgsql.NewRepositoryProvider(pool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	listener := pgsql.NewChangeListener(cfg.PgsqlURL, serviceContainer.ChangeFeed, logger)
	go listener.Run(ctx)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendBaseURL},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", "x-api-key"},
			AllowCredentials: true,
		}),
	)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	driver, err := migratepgx.WithInstance(db, &migratepgx.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "pgx", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
