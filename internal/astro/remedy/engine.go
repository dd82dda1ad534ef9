// Package remedy selects the single remedy a user should act on next, from
// the karmic debts a chart evaluation produced. Selection is deterministic
// for a fixed input, including the shown-remedy history.
package remedy

import (
	"sort"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/lalkitab"
	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
)

const (
	// DefaultRecencyWindow is how long a shown remedy is deprioritized.
	DefaultRecencyWindow = 7 * 24 * time.Hour
	// DefaultWarnThreshold is the minimum debt severity that produces
	// warnings instead of the sentinel.
	DefaultWarnThreshold = astro.Severity(4)

	// WarningNoneKey is emitted when no debt crosses the threshold. The
	// absence of warnings is always stated, never implied by an empty list.
	WarningNoneKey = "remedy.warning.none"

	// fallbackKey keeps the primary slot filled for charts with no debts.
	fallbackKey = "remedy.general.daily_gratitude"
)

// Remedy is one actionable remedy key with the debt that motivated it.
type Remedy struct {
	Key      string         `json:"key"`
	Category astro.Category `json:"category"`
	Severity astro.Severity `json:"severity"`
}

// Selection is the engine output: exactly one primary remedy plus warnings.
type Selection struct {
	Primary  Remedy   `json:"primary"`
	Warnings []string `json:"warnings"`
}

// Params carries everything Select needs. Zero RecencyWindow and
// WarnThreshold fall back to the defaults.
type Params struct {
	Findings      []lalkitab.Finding
	Profile       personalization.Profile
	LastShown     map[string]time.Time
	Now           time.Time
	RecencyWindow time.Duration
	WarnThreshold astro.Severity
}

// Select ranks every remedy the findings propose and returns the winner.
// Ranking order: remedies outside the recency window first, then severity
// descending, then personalization affinity descending, then key. A top
// remedy shown within the window therefore loses to any unshown alternative.
func Select(p Params) Selection {
	window := p.RecencyWindow
	if window == 0 {
		window = DefaultRecencyWindow
	}
	threshold := p.WarnThreshold
	if threshold == 0 {
		threshold = DefaultWarnThreshold
	}

	candidates := collect(p.Findings)
	sel := Selection{Warnings: warnings(p.Findings, threshold)}
	if len(candidates) == 0 {
		sel.Primary = Remedy{Key: fallbackKey, Category: astro.CategorySpiritual, Severity: astro.SeverityMild}
		return sel
	}

	recent := func(key string) bool {
		shown, ok := p.LastShown[key]
		return ok && p.Now.Sub(shown) < window
	}
	sort.Slice(candidates, func(i, j int) bool {
		ri, rj := recent(candidates[i].Key), recent(candidates[j].Key)
		if ri != rj {
			return !ri
		}
		if candidates[i].Severity != candidates[j].Severity {
			return candidates[i].Severity > candidates[j].Severity
		}
		ai := p.Profile.Weight(candidates[i].Category)
		aj := p.Profile.Weight(candidates[j].Category)
		if ai != aj {
			return ai > aj
		}
		return candidates[i].Key < candidates[j].Key
	})
	sel.Primary = candidates[0]
	return sel
}

// collect flattens finding remedies, deduplicating by key and keeping the
// strongest motivating debt per remedy.
func collect(findings []lalkitab.Finding) []Remedy {
	byKey := make(map[string]Remedy)
	for _, f := range findings {
		for _, key := range f.Remedies {
			cur, ok := byKey[key]
			if !ok || f.Severity > cur.Severity {
				byKey[key] = Remedy{Key: key, Category: f.Category, Severity: f.Severity}
			}
		}
	}
	out := make([]Remedy, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, r)
	}
	return out
}

func warnings(findings []lalkitab.Finding, threshold astro.Severity) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range findings {
		if f.Severity < threshold {
			continue
		}
		key := "remedy.warning." + string(f.Category) + "." + f.RuleID
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	if len(out) == 0 {
		return []string{WarningNoneKey}
	}
	sort.Strings(out)
	return out
}
