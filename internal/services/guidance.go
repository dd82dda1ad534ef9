package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
	"github.com/astrosetu/astrosetu-backend/internal/astro/prediction"
	"github.com/astrosetu/astrosetu-backend/internal/astro/remedy"
	redisclient "github.com/astrosetu/astrosetu-backend/internal/clients/redis"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// Guidance is one delivered prediction plus its remedy selection. The
// PredictionID is self-describing so feedback can be attributed without
// persisting derived results.
type Guidance struct {
	PredictionID string            `json:"prediction_id"`
	Prediction   prediction.Result `json:"prediction"`
	Remedy       remedy.Selection  `json:"remedy"`
	Manglik      bool              `json:"manglik"`
}

type GuidanceService interface {
	Predict(ctx context.Context, subjectID uuid.UUID, kind prediction.Kind, at time.Time) (*Guidance, error)
}

type guidanceService struct {
	log         *logger.Logger
	profileRepo repos.BirthProfileRepo
	persRepo    repos.PersonalizationRepo
	astrology   AstrologyService
	history     redisclient.RemedyHistory
}

func NewGuidanceService(
	log *logger.Logger,
	profileRepo repos.BirthProfileRepo,
	persRepo repos.PersonalizationRepo,
	astrology AstrologyService,
	history redisclient.RemedyHistory,
) GuidanceService {
	return &guidanceService{
		log:         log.With("service", "GuidanceService"),
		profileRepo: profileRepo,
		persRepo:    persRepo,
		astrology:   astrology,
		history:     history,
	}
}

func (s *guidanceService) Predict(ctx context.Context, subjectID uuid.UUID, kind prediction.Kind, at time.Time) (*Guidance, error) {
	profile, err := s.profileRepo.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return nil, err
	}
	bundle, err := s.astrology.Bundle(profile)
	if err != nil {
		return nil, err
	}
	prof := stateProfileOrDefault(ctx, s.persRepo, subjectID)

	window, err := prediction.NewWindow(kind, at)
	if err != nil {
		return nil, err
	}
	result, err := prediction.Generate(prediction.Params{
		Chart:      bundle.Chart,
		Birth:      profile.BirthUTC,
		Numerology: bundle.Numerology,
		Findings:   bundle.Findings,
		Window:     window,
		Profile:    prof,
	})
	if err != nil {
		return nil, err
	}

	// Remedy history is advisory; a cold cache must not block guidance.
	lastShown := map[string]time.Time{}
	if s.history != nil {
		if shown, err := s.history.LastShown(ctx, subjectID); err != nil {
			s.log.Warn("remedy history unavailable", "subject_id", subjectID, "error", err)
		} else {
			lastShown = shown
		}
	}
	selection := remedy.Select(remedy.Params{
		Findings:  bundle.Findings,
		Profile:   prof,
		LastShown: lastShown,
		Now:       at,
	})
	if s.history != nil {
		if err := s.history.MarkShown(ctx, subjectID, selection.Primary.Key, at); err != nil {
			s.log.Warn("failed to record shown remedy", "subject_id", subjectID, "error", err)
		}
	}

	return &Guidance{
		PredictionID: encodePredictionID(window, result),
		Prediction:   result,
		Remedy:       selection,
		Manglik:      bundle.Manglik,
	}, nil
}

// stateProfileOrDefault loads the persisted weights, degrading to the
// uniform default for subjects registered before personalization existed.
func stateProfileOrDefault(ctx context.Context, persRepo repos.PersonalizationRepo, subjectID uuid.UUID) personalization.Profile {
	st, err := persRepo.GetBySubject(ctx, nil, subjectID)
	if err != nil {
		return personalization.DefaultProfile()
	}
	return stateToProfile(st)
}

// encodePredictionID packs the window and the touched categories into a
// stable identifier: "<kind>:<start>:<cat+cat>". Feedback resolves the
// categories straight from the id, so predictions never need persisting.
func encodePredictionID(w prediction.Window, r prediction.Result) string {
	seen := make(map[astro.Category]bool)
	for _, slot := range []*prediction.Slot{r.Focus, r.Opportunity, r.Challenge} {
		if slot != nil {
			seen[slot.Category] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for c := range seen {
		cats = append(cats, string(c))
	}
	sort.Strings(cats)
	return fmt.Sprintf("%s:%s:%s", w.Kind, w.Start.Format("2006-01-02"), strings.Join(cats, "+"))
}

// decodePredictionCategories is the inverse of encodePredictionID. A
// malformed or foreign id yields nil, which the personalization engine
// treats as a no-op.
func decodePredictionCategories(predictionID string) []astro.Category {
	parts := strings.Split(predictionID, ":")
	if len(parts) != 3 {
		return nil
	}
	switch prediction.Kind(parts[0]) {
	case prediction.Daily, prediction.Weekly, prediction.Monthly, prediction.Yearly:
	default:
		return nil
	}
	if _, err := time.Parse("2006-01-02", parts[1]); err != nil {
		return nil
	}
	var out []astro.Category
	for _, raw := range strings.Split(parts[2], "+") {
		c := astro.Category(raw)
		if astro.CategoryRank(c) >= len(astro.CategoryPriority()) {
			return nil
		}
		out = append(out, c)
	}
	return out
}
