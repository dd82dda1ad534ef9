package main

import (
	"fmt"
	"os"
	"time"

	redisclient "github.com/astrosetu/astrosetu-backend/internal/clients/redis"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	"github.com/astrosetu/astrosetu-backend/internal/db"
	"github.com/astrosetu/astrosetu-backend/internal/http/handlers"
	"github.com/astrosetu/astrosetu-backend/internal/http/middleware"
	"github.com/astrosetu/astrosetu-backend/internal/platform/envutil"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
	"github.com/astrosetu/astrosetu-backend/internal/server"
	"github.com/astrosetu/astrosetu-backend/internal/services"
)

func main() {
	// Logger
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	tokenTTL := time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 86400)) * time.Second
	port := envutil.String("PORT", "8080")

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Redis remedy history. Guidance degrades gracefully without it.
	var history redisclient.RemedyHistory
	if client, err := redisclient.NewClient(); err != nil {
		log.Warn("Redis init failed; remedy recency disabled", "error", err)
	} else {
		history = redisclient.NewRemedyHistory(client, log, 30*24*time.Hour)
	}

	// Repos
	log.Info("Setting up repos...")
	profileRepo := repos.NewBirthProfileRepo(thePG, log)
	feedbackRepo := repos.NewFeedbackRepo(thePG, log)
	persRepo := repos.NewPersonalizationRepo(thePG, log)
	familyRepo := repos.NewFamilyGroupRepo(thePG, log)

	// Services
	log.Info("Setting up services...")
	astrologyService := services.NewAstrologyService(log)
	registrationService := services.NewRegistrationService(thePG, log, profileRepo, persRepo)
	guidanceService := services.NewGuidanceService(log, profileRepo, persRepo, astrologyService, history)
	feedbackService := services.NewFeedbackService(thePG, log, feedbackRepo, persRepo)
	familyService := services.NewFamilyService(log, familyRepo, profileRepo, persRepo, astrologyService)

	// HTTP
	authMiddleware := middleware.NewAuthMiddleware(jwtSecretKey, log)
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:    authMiddleware,
		ProfileHandler:    handlers.NewProfileHandler(registrationService, astrologyService, profileRepo, authMiddleware, tokenTTL),
		PredictionHandler: handlers.NewPredictionHandler(guidanceService),
		FeedbackHandler:   handlers.NewFeedbackHandler(feedbackService),
		FamilyHandler:     handlers.NewFamilyHandler(familyService, familyRepo),
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
