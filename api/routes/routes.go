package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lottotrack/lottery-tracker-backend/internal/config"
	"github.com/lottotrack/lottery-tracker-backend/internal/handlers"
	"github.com/lottotrack/lottery-tracker-backend/internal/middleware"
)

// HandlerDependencies bundles the handlers wired in main.
type HandlerDependencies struct {
	AuthHandler    *handlers.AuthHandler
	DrawHandler    *handlers.DrawHandler
	RefreshHandler *handlers.RefreshHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		public.POST("/auth/login", deps.AuthHandler.Login)

		draws := public.Group("/draws")
		{
			draws.GET("/latest", deps.DrawHandler.GetLatest)
			draws.GET("/history/:game", deps.DrawHandler.GetHistory)
		}
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/refresh", deps.RefreshHandler.TriggerRefresh)
	}

	return router
}
