package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/astrosetu/astrosetu-backend/internal/http/handlers"
	"github.com/astrosetu/astrosetu-backend/internal/http/middleware"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	ProfileHandler    *handlers.ProfileHandler
	PredictionHandler *handlers.PredictionHandler
	FeedbackHandler   *handlers.FeedbackHandler
	FamilyHandler     *handlers.FamilyHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/register", cfg.ProfileHandler.Register)

	// Protected
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.GET("/profile", cfg.ProfileHandler.GetProfile)
	protected.GET("/prediction", cfg.PredictionHandler.GetPrediction)
	protected.POST("/feedback", cfg.FeedbackHandler.SubmitFeedback)
	protected.POST("/family", cfg.FamilyHandler.CreateGroup)
	protected.GET("/family/:id/report", cfg.FamilyHandler.GetReport)

	return router
}
