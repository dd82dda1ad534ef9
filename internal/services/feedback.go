package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
	"github.com/astrosetu/astrosetu-backend/internal/data/repos"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

type FeedbackService interface {
	Submit(ctx context.Context, subjectID uuid.UUID, predictionID string, rating int, comment string) (*types.FeedbackRecord, error)
}

type feedbackService struct {
	db           *gorm.DB
	log          *logger.Logger
	feedbackRepo repos.FeedbackRepo
	persRepo     repos.PersonalizationRepo
}

func NewFeedbackService(
	db *gorm.DB,
	log *logger.Logger,
	feedbackRepo repos.FeedbackRepo,
	persRepo repos.PersonalizationRepo,
) FeedbackService {
	return &feedbackService{
		db:           db,
		log:          log.With("service", "FeedbackService"),
		feedbackRepo: feedbackRepo,
		persRepo:     persRepo,
	}
}

// Submit appends the feedback record and folds the rating into the
// personalization weights. The record and the weight update commit together;
// a lost version race rolls both back and surfaces the conflict to the
// caller, who may simply retry the request.
func (s *feedbackService) Submit(ctx context.Context, subjectID uuid.UUID, predictionID string, rating int, comment string) (*types.FeedbackRecord, error) {
	if rating < personalization.MinRating || rating > personalization.MaxRating {
		return nil, fmt.Errorf("%w: rating %d out of [%d,%d]",
			errs.ErrInvalidInput, rating, personalization.MinRating, personalization.MaxRating)
	}
	categories := decodePredictionCategories(predictionID)
	if len(categories) == 0 {
		s.log.Warn("feedback references an unknown prediction; weights unchanged",
			"subject_id", subjectID, "prediction_id", predictionID)
	}

	record := &types.FeedbackRecord{
		SubjectID:    subjectID,
		PredictionID: predictionID,
		Rating:       rating,
		Comment:      comment,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.feedbackRepo.Append(ctx, tx, record); err != nil {
			return err
		}
		if len(categories) == 0 {
			return nil
		}

		state, err := s.persRepo.GetBySubject(ctx, tx, subjectID)
		if err != nil {
			return err
		}
		prof := stateToProfile(state)
		next, err := personalization.ApplyFeedback(prof, rating, categories)
		if err != nil {
			return err
		}
		if err := profileToState(state, next); err != nil {
			return err
		}
		return s.persRepo.Save(ctx, tx, state, prof.Version)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
