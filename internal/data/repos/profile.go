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

type BirthProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.BirthProfile) (*types.BirthProfile, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.BirthProfile, error)
	GetBySubjects(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.BirthProfile, error)
	Replace(ctx context.Context, tx *gorm.DB, updated *types.BirthProfile) (*types.BirthProfile, error)
}

type birthProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBirthProfileRepo(db *gorm.DB, baseLog *logger.Logger) BirthProfileRepo {
	return &birthProfileRepo{db: db, log: baseLog.With("repo", "BirthProfileRepo")}
}

func (r *birthProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.BirthProfile) (*types.BirthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if profile.SubjectID == uuid.Nil {
		profile.SubjectID = uuid.New()
	}
	if profile.Version == 0 {
		profile.Version = 1
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *birthProfileRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.BirthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.BirthProfile
	err := transaction.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("version DESC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: birth profile %s", errs.ErrNotFound, subjectID)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *birthProfileRepo) GetBySubjects(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]*types.BirthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.BirthProfile
	if len(subjectIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("subject_id IN ?", subjectIDs).
		Order("subject_id, version DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	// Keep only the latest version per subject.
	latest := make([]*types.BirthProfile, 0, len(subjectIDs))
	seen := make(map[uuid.UUID]bool, len(subjectIDs))
	for _, p := range results {
		if seen[p.SubjectID] {
			continue
		}
		seen[p.SubjectID] = true
		latest = append(latest, p)
	}
	return latest, nil
}

// Replace soft-deletes the current version of the subject's profile and
// inserts updated as a fresh row with the version bumped. Earlier versions
// stay queryable through gorm's Unscoped.
func (r *birthProfileRepo) Replace(ctx context.Context, tx *gorm.DB, updated *types.BirthProfile) (*types.BirthProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	current, err := r.GetBySubject(ctx, transaction, updated.SubjectID)
	if err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).Delete(current).Error; err != nil {
		return nil, err
	}
	updated.ID = uuid.New()
	updated.Version = current.Version + 1
	if err := transaction.WithContext(ctx).Create(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}
