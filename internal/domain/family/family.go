package family

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FamilyGroup struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"not null;column:name" json:"name"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (FamilyGroup) TableName() string { return "family_group" }

// FamilyMember links a birth profile subject into a group.
type FamilyMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index;column:group_id" json:"group_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index;column:subject_id" json:"subject_id"`
	Relation  string    `gorm:"column:relation" json:"relation"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (FamilyMember) TableName() string { return "family_member" }
