package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PersonalizationState is the only mutable per-user state. Writes go through
// an optimistic version guard at the repository; the engine that produces new
// weights never retries on conflict.
type PersonalizationState struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex;column:subject_id" json:"subject_id"`

	WeightsJSON    datatypes.JSON `gorm:"column:weights_json" json:"weights_json"`
	TonePreference string         `gorm:"column:tone_preference" json:"tone_preference"`
	Version        int            `gorm:"not null;default:1;column:version" json:"version"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (PersonalizationState) TableName() string { return "personalization_state" }
