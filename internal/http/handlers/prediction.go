package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astrosetu/astrosetu-backend/internal/astro/prediction"
	"github.com/astrosetu/astrosetu-backend/internal/http/middleware"
	"github.com/astrosetu/astrosetu-backend/internal/services"
)

type PredictionHandler struct {
	guidance services.GuidanceService
}

func NewPredictionHandler(guidance services.GuidanceService) *PredictionHandler {
	return &PredictionHandler{guidance: guidance}
}

// GET /api/prediction?kind=daily
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	subjectID, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}
	kind := prediction.Kind(c.DefaultQuery("kind", string(prediction.Daily)))

	g, err := h.guidance.Predict(c.Request.Context(), subjectID, kind, time.Now().UTC())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}
