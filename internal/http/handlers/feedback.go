package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astrosetu/astrosetu-backend/internal/http/middleware"
	"github.com/astrosetu/astrosetu-backend/internal/services"
)

type FeedbackHandler struct {
	feedback services.FeedbackService
}

func NewFeedbackHandler(feedback services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

// POST /api/feedback
// body: { "prediction_id": "...", "rating": 8, "comment": "..." }
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	subjectID, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}
	var req struct {
		PredictionID string `json:"prediction_id"`
		Rating       int    `json:"rating"`
		Comment      string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}

	record, err := h.feedback.Submit(c.Request.Context(), subjectID, req.PredictionID, req.Rating, req.Comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"feedback": record})
}
