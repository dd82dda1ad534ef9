package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BirthProfile is one immutable version of a person's birth data. Edits
// never mutate a row: the old version is soft-deleted and a new row with a
// bumped Version is inserted. SubjectID is the stable identity across
// versions.
type BirthProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index;column:subject_id" json:"subject_id"`

	FullName     string    `gorm:"not null;column:full_name" json:"full_name"`
	BirthUTC     time.Time `gorm:"not null;column:birth_utc" json:"birth_utc"`
	HasBirthTime bool      `gorm:"not null;column:has_birth_time" json:"has_birth_time"`
	Lat          float64   `gorm:"not null;column:lat" json:"lat"`
	Lon          float64   `gorm:"not null;column:lon" json:"lon"`
	Timezone     string    `gorm:"column:timezone" json:"timezone"`
	PlaceName    string    `gorm:"column:place_name" json:"place_name"`
	Relationship string    `gorm:"column:relationship" json:"relationship"`
	Language     string    `gorm:"column:language" json:"language"`

	Version int `gorm:"not null;default:1;column:version" json:"version"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (BirthProfile) TableName() string { return "birth_profile" }

// FeedbackRecord is append-only; rows are never updated or deleted.
type FeedbackRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID    uuid.UUID `gorm:"type:uuid;not null;index;column:subject_id" json:"subject_id"`
	PredictionID string    `gorm:"not null;column:prediction_id" json:"prediction_id"`
	Rating       int       `gorm:"not null;column:rating" json:"rating"`
	Comment      string    `gorm:"column:comment" json:"comment"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (FeedbackRecord) TableName() string { return "feedback_record" }
