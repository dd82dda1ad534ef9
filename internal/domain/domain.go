// Package domain re-exports every persisted model under one import, the way
// the rest of the codebase consumes them.
package domain

import (
	"github.com/astrosetu/astrosetu-backend/internal/domain/family"
	"github.com/astrosetu/astrosetu-backend/internal/domain/user"
)

type (
	BirthProfile         = user.BirthProfile
	FeedbackRecord       = user.FeedbackRecord
	PersonalizationState = user.PersonalizationState

	FamilyGroup  = family.FamilyGroup
	FamilyMember = family.FamilyMember
)
