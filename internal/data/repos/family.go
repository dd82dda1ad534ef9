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

type FamilyGroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, group *types.FamilyGroup) (*types.FamilyGroup, error)
	Get(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.FamilyGroup, error)
	AddMember(ctx context.Context, tx *gorm.DB, member *types.FamilyMember) (*types.FamilyMember, error)
	ListMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.FamilyMember, error)
}

type familyGroupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFamilyGroupRepo(db *gorm.DB, baseLog *logger.Logger) FamilyGroupRepo {
	return &familyGroupRepo{db: db, log: baseLog.With("repo", "FamilyGroupRepo")}
}

func (r *familyGroupRepo) Create(ctx context.Context, tx *gorm.DB, group *types.FamilyGroup) (*types.FamilyGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if group.ID == uuid.Nil {
		group.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

func (r *familyGroupRepo) Get(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) (*types.FamilyGroup, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.FamilyGroup
	err := transaction.WithContext(ctx).Where("id = ?", groupID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: family group %s", errs.ErrNotFound, groupID)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *familyGroupRepo) AddMember(ctx context.Context, tx *gorm.DB, member *types.FamilyMember) (*types.FamilyMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

func (r *familyGroupRepo) ListMembers(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.FamilyMember, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.FamilyMember
	if err := transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
