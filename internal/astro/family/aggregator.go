// Package family aggregates individual guidance into one report per family
// group. Aggregation is order independent: the same members in any order
// produce the identical report.
package family

import (
	"fmt"
	"sort"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/lalkitab"
	"github.com/astrosetu/astrosetu-backend/internal/astro/remedy"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Member is one family member's precomputed guidance inputs. MoonSign drives
// element compatibility; LifePath drives number compatibility.
type Member struct {
	ID       string
	MoonSign astro.Sign
	LifePath int
	Findings []lalkitab.Finding
	Remedy   remedy.Remedy
	Warnings []string
}

// Pair is one scored member pairing, 0-100.
type Pair struct {
	A     string `json:"a"`
	B     string `json:"b"`
	Score int    `json:"score"`
}

// Report is the consolidated family view: a single remedy, the harmony score
// and the union of warnings.
type Report struct {
	Harmony  float64       `json:"harmony"`
	Pairs    []Pair        `json:"pairs"`
	Remedy   remedy.Remedy `json:"remedy"`
	Warnings []string      `json:"warnings"`
}

// Aggregate builds the family report. It needs at least two members; the
// consolidated remedy comes from the member carrying the highest-severity
// karmic debt, ties broken by category priority and then member id.
func Aggregate(members []Member) (Report, error) {
	if len(members) < 2 {
		return Report{}, fmt.Errorf("%w: a family group needs at least two members", errs.ErrInvalidInput)
	}
	ordered := make([]Member, len(members))
	copy(ordered, members)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var pairs []Pair
	total := 0
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			score := Compatibility(ordered[i], ordered[j])
			pairs = append(pairs, Pair{A: ordered[i].ID, B: ordered[j].ID, Score: score})
			total += score
		}
	}

	return Report{
		Harmony:  float64(total) / float64(len(pairs)),
		Pairs:    pairs,
		Remedy:   consolidatedRemedy(ordered),
		Warnings: mergeWarnings(ordered),
	}, nil
}

// Compatibility scores one pair 0-100 as the mean of the element relation
// and the numerology number affinity. It is symmetric.
func Compatibility(a, b Member) int {
	return (elementScore(a.MoonSign.Element(), b.MoonSign.Element()) + numberScore(a.LifePath, b.LifePath)) / 2
}

// elementScore follows the classical relation: fire pairs with air, earth
// with water, identical elements reinforce each other.
func elementScore(a, b astro.Element) int {
	if a == b {
		return 90
	}
	if a > b {
		a, b = b, a
	}
	switch {
	case a == astro.Fire && b == astro.Air:
		return 80
	case a == astro.Earth && b == astro.Water:
		return 80
	case a == astro.Earth && b == astro.Air:
		return 50
	case a == astro.Air && b == astro.Water:
		return 45
	case a == astro.Fire && b == astro.Earth:
		return 40
	default: // fire with water
		return 30
	}
}

// numberScore compares collapsed life-path numbers; master numbers collapse
// to their digit sum for compatibility only.
func numberScore(a, b int) int {
	diff := collapse(a) - collapse(b)
	if diff < 0 {
		diff = -diff
	}
	return 100 - diff*10
}

func collapse(n int) int {
	for n > 9 {
		sum := 0
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

func consolidatedRemedy(ordered []Member) remedy.Remedy {
	best := 0
	bestSev := astro.Severity(-1)
	bestRank := len(astro.CategoryPriority())
	for i, m := range ordered {
		dom, ok := lalkitab.Dominant(m.Findings)
		if !ok {
			continue
		}
		rank := astro.CategoryRank(dom.Category)
		switch {
		case dom.Severity > bestSev,
			dom.Severity == bestSev && rank < bestRank:
			best, bestSev, bestRank = i, dom.Severity, rank
		}
	}
	// Members are already id-ordered, so the first qualifying member wins
	// ties; with no debts anywhere the lowest id anchors the remedy.
	return ordered[best].Remedy
}

// mergeWarnings unions member warnings, dropping the per-member sentinel.
// When nothing remains the family-level sentinel states the absence.
func mergeWarnings(ordered []Member) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range ordered {
		for _, w := range m.Warnings {
			if w == remedy.WarningNoneKey || seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	if len(out) == 0 {
		return []string{remedy.WarningNoneKey}
	}
	sort.Strings(out)
	return out
}
