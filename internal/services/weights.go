package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
	types "github.com/astrosetu/astrosetu-backend/internal/domain"
)

// stateToProfile decodes the persisted weights into an engine profile.
// Corrupt or empty JSON degrades to the uniform default rather than failing
// a read path.
func stateToProfile(st *types.PersonalizationState) personalization.Profile {
	prof := personalization.DefaultProfile()
	prof.Version = st.Version
	prof.TonePreference = st.TonePreference
	if len(st.WeightsJSON) == 0 {
		return prof
	}
	var weights map[astro.Category]float64
	if err := json.Unmarshal(st.WeightsJSON, &weights); err != nil || len(weights) == 0 {
		return prof
	}
	prof.Weights = weights
	return prof
}

// profileToState writes the engine profile back onto the persisted row.
func profileToState(st *types.PersonalizationState, prof personalization.Profile) error {
	raw, err := json.Marshal(prof.Weights)
	if err != nil {
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	st.WeightsJSON = raw
	st.TonePreference = prof.TonePreference
	st.Version = prof.Version
	return nil
}

func defaultPersonalizationState(subjectID uuid.UUID) (*types.PersonalizationState, error) {
	st := &types.PersonalizationState{SubjectID: subjectID}
	if err := profileToState(st, personalization.DefaultProfile()); err != nil {
		return nil, err
	}
	return st, nil
}
