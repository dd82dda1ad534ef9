package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/services"
)

type FamilyHandler struct {
	family     services.FamilyService
	familyRepo repos.FamilyGroupRepo
}

func NewFamilyHandler(family services.FamilyService, familyRepo repos.FamilyGroupRepo) *FamilyHandler {
	return &FamilyHandler{family: family, familyRepo: familyRepo}
}

// POST /api/family
// body: { "name": "...", "members": ["<subject uuid>", ...] }
func (h *FamilyHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name    string   `json:"name"`
		Members []string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": err.Error()})
		return
	}
	subjects := make([]uuid.UUID, 0, len(req.Members))
	for _, raw := range req.Members {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": "bad member id " + raw})
			return
		}
		subjects = append(subjects, id)
	}

	ctx := c.Request.Context()
	group, err := h.familyRepo.Create(ctx, nil, &types.FamilyGroup{Name: req.Name})
	if err != nil {
		respondErr(c, err)
		return
	}
	for _, subject := range subjects {
		if _, err := h.familyRepo.AddMember(ctx, nil, &types.FamilyMember{
			GroupID:   group.ID,
			SubjectID: subject,
		}); err != nil {
			respondErr(c, err)
			return
		}
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// GET /api/family/:id/report
func (h *FamilyHandler) GetReport(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "detail": "bad group id"})
		return
	}
	report, err := h.family.Report(c.Request.Context(), groupID, time.Now().UTC())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
