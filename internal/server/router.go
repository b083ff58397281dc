package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/educreate/educreate-backend/internal/handlers"
	"github.com/educreate/educreate-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	SRSHandler          *handlers.SRSHandler
	GameProgressHandler *handlers.GameProgressHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/user", cfg.UserHandler.GetMe)

	api := protected.Group("/api")
	api.GET("/words", cfg.SRSHandler.ListWords)
	api.GET("/srs/words-to-review", cfg.SRSHandler.WordsToReview)
	api.GET("/game-progress", cfg.GameProgressHandler.ListSessions)
	api.POST("/game-progress/start", cfg.GameProgressHandler.StartSession)
	api.POST("/game-progress/complete", cfg.GameProgressHandler.CompleteSession)

	return router
}
