package main

import (
	"fmt"
	"os"

	"github.com/educreate/educreate-backend/internal/cache"
	"github.com/educreate/educreate-backend/internal/config"
	"github.com/educreate/educreate-backend/internal/db"
	"github.com/educreate/educreate-backend/internal/handlers"
	"github.com/educreate/educreate-backend/internal/logger"
	"github.com/educreate/educreate-backend/internal/middleware"
	"github.com/educreate/educreate-backend/internal/repos"
	"github.com/educreate/educreate-backend/internal/server"
	"github.com/educreate/educreate-backend/internal/services"
	"github.com/educreate/educreate-backend/internal/srs"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg := config.Load(log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	wordRepo := repos.NewWordRepo(thePG, log)
	progressRepo := repos.NewUserWordProgressRepo(thePG, log)
	gameProgressRepo := repos.NewGameProgressRepo(thePG, log)

	// Word catalog cache is optional; the review flow reads straight
	// through to postgres without it.
	wordCache, err := cache.NewWordCache(log)
	if err != nil {
		log.Warn("Word cache unavailable, continuing without it", "error", err)
		wordCache = nil
	}

	// Services
	log.Info("Setting up services...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userService := services.NewUserService(thePG, log, userRepo)
	reviewService := services.NewReviewService(thePG, log, wordRepo, progressRepo, wordCache)
	progressService := services.NewProgressService(thePG, log, progressRepo, wordRepo, srs.NewPolicy())
	sessionService := services.NewSessionService(thePG, log, gameProgressRepo, progressService)

	// Handlers
	log.Info("Setting up handlers...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	srsHandler := handlers.NewSRSHandler(log, reviewService)
	gameProgressHandler := handlers.NewGameProgressHandler(log, sessionService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		UserHandler:         userHandler,
		SRSHandler:          srsHandler,
		GameProgressHandler: gameProgressHandler,
	})

	log.Info("Server listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
