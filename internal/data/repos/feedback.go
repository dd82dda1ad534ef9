package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// FeedbackRepo is append-only. There is deliberately no update or delete.
type FeedbackRepo interface {
	Append(ctx context.Context, tx *gorm.DB, record *types.FeedbackRecord) (*types.FeedbackRecord, error)
	ListBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID, limit int) ([]*types.FeedbackRecord, error)
}

type feedbackRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFeedbackRepo(db *gorm.DB, baseLog *logger.Logger) FeedbackRepo {
	return &feedbackRepo{db: db, log: baseLog.With("repo", "FeedbackRepo")}
}

func (r *feedbackRepo) Append(ctx context.Context, tx *gorm.DB, record *types.FeedbackRecord) (*types.FeedbackRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *feedbackRepo) ListBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID, limit int) ([]*types.FeedbackRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FeedbackRecord
	q := transaction.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
