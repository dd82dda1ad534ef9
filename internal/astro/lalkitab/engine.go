package lalkitab

import (
	"sort"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/chart"
)

// Finding is one matched rule applied to a concrete chart placement.
type Finding struct {
	RuleID   string         `json:"rule_id"`
	Planet   astro.Body     `json:"planet"`
	House    int            `json:"house"`
	Category astro.Category `json:"category"`
	Severity astro.Severity `json:"severity"`
	Remedies []string       `json:"remedies"`
}

// Evaluate matches every rule against the chart and keeps all matches.
// The result is ordered by severity descending, then category priority,
// then rule id, so identical charts always yield an identical slice.
func Evaluate(c *chart.BirthChart) []Finding {
	var out []Finding
	for _, r := range rules {
		b, _ := r.Body()
		if !matches(r, c, b) {
			continue
		}
		out = append(out, Finding{
			RuleID:   r.ID,
			Planet:   b,
			House:    c.Houses[b],
			Category: r.Category,
			Severity: r.Severity,
			Remedies: append([]string(nil), r.Remedies...),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		if out[i].Category != out[j].Category {
			return astro.CategoryRank(out[i].Category) < astro.CategoryRank(out[j].Category)
		}
		return out[i].RuleID < out[j].RuleID
	})
	return out
}

// ByCategory reduces findings to the single strongest finding per category.
func ByCategory(findings []Finding) map[astro.Category]Finding {
	out := make(map[astro.Category]Finding)
	// Evaluate already ordered the slice, so the first finding seen per
	// category is the strongest one.
	for _, f := range findings {
		if _, ok := out[f.Category]; !ok {
			out[f.Category] = f
		}
	}
	return out
}

// Dominant picks the single strongest finding overall. Equal severities are
// broken by category priority, then rule id. ok is false for an empty slice.
func Dominant(findings []Finding) (Finding, bool) {
	if len(findings) == 0 {
		return Finding{}, false
	}
	return findings[0], true
}

// IsManglik reports the classic Mars dosha: Mars occupying house 1, 2, 4, 7,
// 8 or 12.
func IsManglik(c *chart.BirthChart) bool {
	switch c.Houses[astro.Mars] {
	case 1, 2, 4, 7, 8, 12:
		return true
	}
	return false
}

func matches(r Rule, c *chart.BirthChart, b astro.Body) bool {
	if len(r.Houses) > 0 {
		found := false
		for _, h := range r.Houses {
			if c.Houses[b] == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	switch r.Condition {
	case CondAny:
		return true
	case CondDebilitated:
		return c.Dignities[b] == chart.DignityDebilitated
	case CondRetrograde:
		return c.Positions[b].Retrograde
	case CondAfflicted:
		return isAfflicted(c, b)
	}
	return false
}

// isAfflicted reports a debilitated placement or a house shared with a
// natural malefic other than the planet itself.
func isAfflicted(c *chart.BirthChart, b astro.Body) bool {
	if c.Dignities[b] == chart.DignityDebilitated {
		return true
	}
	for _, m := range []astro.Body{astro.Saturn, astro.Rahu, astro.Ketu} {
		if m == b {
			continue
		}
		if c.Houses[m] == c.Houses[b] {
			return true
		}
	}
	return false
}
