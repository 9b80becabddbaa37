package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	portssvc "github.com/willbanks/load-coordinator/internal/core/ports/services"
	"github.com/willbanks/load-coordinator/internal/middleware"
	"github.com/willbanks/load-coordinator/internal/platform/config"
)

// RegisterRoutes wires all HTTP routes onto the engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	home := newHomeHandler()
	r.GET("/health", home.Health)

	setupAuthRoutes(r, cfg, services)
	setupAPIV1Routes(r, cfg, services)

	if !cfg.IsProduction {
		setupSwaggerRoutes(r)
	}
}

func setupAuthRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	authH := newAuthHandler(cfg, services)
	googleH := newGoogleOAuthHandler(cfg, services, authH)

	auth := r.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute))
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/refresh", authH.Refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg), authH.Logout)

		auth.GET("/google/login", googleH.GoogleLogin)
		auth.GET("/google/callback", googleH.GoogleCallback)
		auth.POST("/google/token", googleH.GoogleTokenSignIn)
	}
}

func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	loadH := newLoadHandler(services)
	uploadH := newUploadHandler(services)
	documentH := newDocumentHandler(services)
	auditH := newAuditHandler(services)
	reportingH := newReportingHandler(services)
	eventsH := newEventsHandler(services)
	apiTokenH := newAPITokenHandler(services)
	userH := newUserHandler(services)

	v1 := r.Group("/api/v1")
	v1.Use(
		middleware.RateLimitMiddleware(cfg.RateLimitPerMinute),
		middleware.APITokenAuthMiddleware(services.APIToken),
		middleware.AuthMiddleware(cfg),
		middleware.PosthogMiddleware(),
	)
	{
		loads := v1.Group("/loads")
		{
			loads.GET("", loadH.ListLoads)
			loads.POST("/bulk-status", loadH.BulkUpdateStatus)
			loads.GET("/:loadID", loadH.GetLoad)
			loads.PATCH("/:loadID", loadH.UpdateLoad)
			loads.POST("/:loadID/confirm", loadH.ConfirmLoad)
			loads.GET("/:loadID/details", loadH.GetLoadDetails)
			loads.GET("/:loadID/stops", loadH.GetLoadStops)
			loads.GET("/:loadID/history", auditH.GetLoadHistory)

			loads.GET("/:loadID/documents/loading-doc", documentH.LoadingDoc)
			loads.GET("/:loadID/documents/bill-of-lading", documentH.BillOfLading)
			loads.GET("/:loadID/documents/confirmed-csv", documentH.ConfirmedCSV)
		}

		v1.PATCH("/load-details/:detailID", loadH.UpdateLineItem)

		imports := v1.Group("/imports")
		{
			imports.POST("/loads", uploadH.ImportLoads)
			imports.POST("/details", uploadH.ImportDetails)
			imports.POST("/stops", uploadH.ImportStops)
			imports.POST("/erp-sync", uploadH.SyncWorkbook)
		}

		v1.GET("/reports/status-summary", reportingH.StatusSummary)
		v1.GET("/events", eventsH.StreamEvents)

		apiTokens := v1.Group("/api-tokens")
		{
			apiTokens.POST("", apiTokenH.CreateToken)
			apiTokens.GET("", apiTokenH.ListTokens)
			apiTokens.DELETE("/:tokenID", apiTokenH.RevokeToken)
		}

		users := v1.Group("/users")
		{
			users.GET("/me", userH.GetMe)
			users.GET("", userH.ListUsers)
			users.GET("/:userID", userH.GetUser)
			users.PATCH("/:userID", userH.UpdateUser)
		}
	}
}

func setupSwaggerRoutes(r *gin.Engine) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
