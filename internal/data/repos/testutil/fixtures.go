package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/astrosetu/astrosetu-backend/internal/domain"
)

func SeedBirthProfile(tb testing.TB, ctx context.Context, tx *gorm.DB, fullName string) *types.BirthProfile {
	tb.Helper()
	p := &types.BirthProfile{
		ID:           uuid.New(),
		SubjectID:    uuid.New(),
		FullName:     fullName,
		BirthUTC:     time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC),
		HasBirthTime: true,
		Lat:          19.076,
		Lon:          72.877,
		Timezone:     "Asia/Kolkata",
		PlaceName:    "mumbai",
		Language:     "hi",
		Version:      1,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed birth profile: %v", err)
	}
	return p
}

func SeedPersonalization(tb testing.TB, ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) *types.PersonalizationState {
	tb.Helper()
	st := &types.PersonalizationState{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		WeightsJSON: []byte(`{"health":0.25,"relationships":0.25,"wealth":0.25,"spiritual":0.25}`),
		Version:     1,
	}
	if err := tx.WithContext(ctx).Create(st).Error; err != nil {
		tb.Fatalf("seed personalization state: %v", err)
	}
	return st
}
