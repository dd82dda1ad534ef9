package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/astrosetu/astrosetu-backend/internal/domain"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
	"github.com/astrosetu/astrosetu-backend/internal/platform/logger"
)

// PersonalizationRepo guards the one mutable table with optimistic
// versioning. Save only succeeds when the stored version still equals
// expectedVersion; a lost race surfaces as ErrPersonalizationConflict and is
// never retried here.
type PersonalizationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, state *types.PersonalizationState) (*types.PersonalizationState, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.PersonalizationState, error)
	Save(ctx context.Context, tx *gorm.DB, state *types.PersonalizationState, expectedVersion int) error
}

type personalizationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonalizationRepo(db *gorm.DB, baseLog *logger.Logger) PersonalizationRepo {
	return &personalizationRepo{db: db, log: baseLog.With("repo", "PersonalizationRepo")}
}

func (r *personalizationRepo) Create(ctx context.Context, tx *gorm.DB, state *types.PersonalizationState) (*types.PersonalizationState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if state.ID == uuid.Nil {
		state.ID = uuid.New()
	}
	if state.Version == 0 {
		state.Version = 1
	}
	if err := transaction.WithContext(ctx).Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (r *personalizationRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.PersonalizationState, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.PersonalizationState
	err := transaction.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: personalization state %s", errs.ErrNotFound, subjectID)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *personalizationRepo) Save(ctx context.Context, tx *gorm.DB, state *types.PersonalizationState, expectedVersion int) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&types.PersonalizationState{}).
		Where("subject_id = ? AND version = ?", state.SubjectID, expectedVersion).
		Updates(map[string]interface{}{
			"weights_json":    state.WeightsJSON,
			"tone_preference": state.TonePreference,
			"version":         state.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		r.log.Warn("personalization save lost the version race",
			"subject_id", state.SubjectID, "expected_version", expectedVersion)
		return fmt.Errorf("%w: subject %s expected version %d",
			errs.ErrPersonalizationConflict, state.SubjectID, expectedVersion)
	}
	return nil
}
