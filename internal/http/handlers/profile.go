package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	"github.com/astrosetu/astrosetu-backend/internal/http/middleware"
	"github.com/astrosetu/astrosetu-backend/internal/services"
)

type ProfileHandler struct {
	registration services.RegistrationService
	astrology    services.AstrologyService
	profileRepo  repos.BirthProfileRepo
	auth         *middleware.AuthMiddleware
	tokenTTL     time.Duration
}

func NewProfileHandler(
	registration services.RegistrationService,
	astrology services.AstrologyService,
	profileRepo repos.BirthProfileRepo,
	auth *middleware.AuthMiddleware,
	tokenTTL time.Duration,
) *ProfileHandler {
	return &ProfileHandler{
		registration: registration,
		astrology:    astrology,
		profileRepo:  profileRepo,
		auth:         auth,
		tokenTTL:     tokenTTL,
	}
}

// POST /api/register
func (h *ProfileHandler) Register(c *gin.Context) {
	var req services.RegistrationInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	profile, err := h.registration.Register(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	token, err := h.auth.IssueToken(profile.SubjectID, h.tokenTTL)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"profile": profile, "token": token})
}

// GET /api/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	subjectID, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}
	profile, err := h.profileRepo.GetBySubject(c.Request.Context(), nil, subjectID)
	if err != nil {
		respondErr(c, err)
		return
	}
	bundle, err := h.astrology.Bundle(profile)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"chart": gin.H{
			"ascendant":  bundle.Chart.Ascendant.String(),
			"moon_sign":  bundle.Chart.Signs[astro.Moon].String(),
			"sun_sign":   bundle.Chart.Signs[astro.Sun].String(),
			"nakshatra":  bundle.Chart.NakshatraIndex,
			"confidence": bundle.Chart.Confidence,
			"manglik":    bundle.Manglik,
		},
		"numerology": bundle.Numerology,
		"findings":   bundle.Findings,
	})
}
