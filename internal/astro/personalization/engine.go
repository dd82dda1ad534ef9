// Package personalization adapts per-user guidance weights from feedback.
// The engine is pure: it never loads or stores state, it only transforms a
// profile. Concurrency control lives at the repository, which saves a profile
// with its expected version.
package personalization

import (
	"fmt"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

const (
	// Alpha is the EMA smoothing factor.
	Alpha = 0.2
	// Floor keeps every category reachable; weights never collapse to zero.
	Floor = 0.01
	// PositiveThreshold splits ratings into a binary signal: above it the
	// signal is 1, at or below it is 0.
	PositiveThreshold = 6

	MinRating = 1
	MaxRating = 10
)

// Profile is the adaptive state for one user. Weights always sum to 1.
type Profile struct {
	Weights        map[astro.Category]float64 `json:"weights"`
	TonePreference string                     `json:"tone_preference"`
	Version        int                        `json:"version"`
}

// DefaultProfile starts every category at an equal weight.
func DefaultProfile() Profile {
	w := make(map[astro.Category]float64, len(astro.CategoryPriority()))
	for _, c := range astro.CategoryPriority() {
		w[c] = 1.0 / float64(len(astro.CategoryPriority()))
	}
	return Profile{Weights: w, Version: 1}
}

// Weight returns the weight for c, falling back to an equal share when the
// profile has never seen the category.
func (p Profile) Weight(c astro.Category) float64 {
	if w, ok := p.Weights[c]; ok {
		return w
	}
	return 1.0 / float64(len(astro.CategoryPriority()))
}

// ApplyFeedback folds one rating into the profile with an exponential moving
// average over the categories the rated prediction touched. Untouched
// categories keep their weight before renormalization. An empty category list
// means the prediction reference could not be resolved; the profile is
// returned unchanged and the caller decides whether to log.
func ApplyFeedback(p Profile, rating int, predictionCategories []astro.Category) (Profile, error) {
	if rating < MinRating || rating > MaxRating {
		return p, fmt.Errorf("%w: rating %d out of [%d,%d]", errs.ErrInvalidInput, rating, MinRating, MaxRating)
	}
	if len(predictionCategories) == 0 {
		return p, nil
	}

	signal := 0.0
	if rating > PositiveThreshold {
		signal = 1.0
	}
	touched := make(map[astro.Category]bool, len(predictionCategories))
	for _, c := range predictionCategories {
		touched[c] = true
	}

	next := Profile{
		Weights:        make(map[astro.Category]float64, len(astro.CategoryPriority())),
		TonePreference: p.TonePreference,
		Version:        p.Version + 1,
	}
	for _, c := range astro.CategoryPriority() {
		w := p.Weight(c)
		if touched[c] {
			w = (1-Alpha)*w + Alpha*signal
		}
		next.Weights[c] = w
	}
	normalize(next.Weights)
	return next, nil
}

// normalize rescales weights to sum to 1 without letting any fall below
// Floor. Floored weights are pinned and the remainder is distributed over
// the free ones; rescaling can push a free weight under the floor, so the
// pass repeats until the floored set is stable.
func normalize(w map[astro.Category]float64) {
	floored := make(map[astro.Category]bool, len(w))
	for c, v := range w {
		if v <= Floor {
			w[c] = Floor
			floored[c] = true
		}
	}
	for i := 0; i <= len(w); i++ {
		free := 0.0
		for c, v := range w {
			if !floored[c] {
				free += v
			}
		}
		if free == 0 {
			return
		}
		scale := (1 - float64(len(floored))*Floor) / free
		changed := false
		for c, v := range w {
			if floored[c] {
				continue
			}
			v *= scale
			if v < Floor {
				v = Floor
				floored[c] = true
				changed = true
			}
			w[c] = v
		}
		if !changed {
			return
		}
	}
}
