package server

import (
	"github.com/gin-contrib/cors"
	"go.uber.org/fx"

	"github.com/datawarden/datawarden/internal/server/api"
	"github.com/datawarden/datawarden/internal/server/middleware"
)

type Handlers struct {
	fx.In

	Query  *api.QueryHandlers
	Tools  *api.ToolHandlers
	Audit  *api.AuditHandlers
	System *api.SystemHandlers
}

func SetupRoutes(server *Server, handlers Handlers) {
	server.Use(middleware.AccessLog())
	server.Use(middleware.WithLoggingTracing(server.Config.Trace))

	// Setup CORS middleware at server level if enabled
	if server.Config.CORS.Enabled {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = server.Config.CORS.AllowedOrigins
		corsConfig.AllowMethods = server.Config.CORS.AllowedMethods
		corsConfig.AllowHeaders = server.Config.CORS.AllowedHeaders
		corsConfig.ExposeHeaders = server.Config.CORS.ExposedHeaders
		corsConfig.AllowCredentials = server.Config.CORS.AllowCredentials
		corsConfig.MaxAge = server.Config.CORS.MaxAge

		corsHandler := cors.New(corsConfig)
		server.Use(corsHandler)
		server.OPTIONS("*any", corsHandler)
	}

	publicGroup := server.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
	{
		// Health check endpoint - no authentication required
		publicGroup.GET("/health", handlers.System.Health)
		publicGroup.GET("/version", handlers.System.Version)
	}

	apiGroup := server.Group("/v1",
		middleware.WithUserContext(),
	)

	{
		queryGroup := apiGroup.Group("", middleware.WithTimeout(server.Config.RequestTimeout))
		queryGroup.POST("/query", handlers.Query.PrepareQuery)
		queryGroup.GET("/audit/recent", handlers.Audit.Recent)
	}

	{
		// Dispatch calls block until every tool finishes, so they get
		// the longer budget.
		toolsGroup := apiGroup.Group("/tools", middleware.WithTimeout(server.Config.DispatchTimeout))
		toolsGroup.POST("/dispatch", handlers.Tools.Dispatch)
		toolsGroup.GET("/stats", handlers.Tools.Stats)
		toolsGroup.DELETE("/history", handlers.Tools.ClearHistory)
	}
}
