// Package prediction turns a natal chart, numerology profile and karmic
// debts into windowed guidance. The generator is pure: identical inputs
// always produce the identical result, and every output field is a stable
// text key, never locale prose.
package prediction

import (
	"fmt"
	"sort"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/chart"
	"github.com/astrosetu/astrosetu-backend/internal/astro/ephemeris"
	"github.com/astrosetu/astrosetu-backend/internal/astro/lalkitab"
	"github.com/astrosetu/astrosetu-backend/internal/astro/numerology"
	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Aspect is a recognized transit-to-natal angle.
type Aspect struct {
	Name string
	Deg  float64
	Orb  float64
	// Hard aspects feed the challenge slot, soft ones the opportunity slot.
	Hard   bool
	Weight float64
}

var aspects = []Aspect{
	{Name: "conjunction", Deg: 0, Orb: 8, Hard: true, Weight: 1.0},
	{Name: "opposition", Deg: 180, Orb: 8, Hard: true, Weight: 0.8},
	{Name: "square", Deg: 90, Orb: 8, Hard: true, Weight: 0.6},
	{Name: "trine", Deg: 120, Orb: 8, Hard: false, Weight: 0.5},
	{Name: "sextile", Deg: 60, Orb: 6, Hard: false, Weight: 0.3},
}

// bodyCategory routes each natal body's transits into a guidance category.
var bodyCategory = map[astro.Body]astro.Category{
	astro.Sun:     astro.CategoryHealth,
	astro.Moon:    astro.CategoryHealth,
	astro.Mars:    astro.CategoryHealth,
	astro.Venus:   astro.CategoryRelationships,
	astro.Mercury: astro.CategoryWealth,
	astro.Jupiter: astro.CategoryWealth,
	astro.Saturn:  astro.CategoryWealth,
	astro.Rahu:    astro.CategorySpiritual,
	astro.Ketu:    astro.CategorySpiritual,
}

// lifePathCategory gives each life-path number a home category for the natal
// trait base. Master numbers lean spiritual.
var lifePathCategory = map[int]astro.Category{
	1:  astro.CategoryWealth,
	2:  astro.CategoryRelationships,
	3:  astro.CategoryRelationships,
	4:  astro.CategoryWealth,
	5:  astro.CategoryHealth,
	6:  astro.CategoryRelationships,
	7:  astro.CategorySpiritual,
	8:  astro.CategoryWealth,
	9:  astro.CategoryHealth,
	11: astro.CategorySpiritual,
	22: astro.CategoryWealth,
	33: astro.CategorySpiritual,
}

// Slot is one filled guidance slot.
type Slot struct {
	Category astro.Category `json:"category"`
	Key      string         `json:"key"`
	Score    float64        `json:"score"`
}

// LuckyElements are the color and number keys of the dominant planet.
type LuckyElements struct {
	Planet   astro.Body `json:"planet"`
	ColorKey string     `json:"color_key"`
	Number   int        `json:"number"`
}

// Result is the generated guidance for one window. Slots without any
// supporting signal are nil, never fabricated.
type Result struct {
	Window      Window           `json:"window"`
	Focus       *Slot            `json:"focus,omitempty"`
	Opportunity *Slot            `json:"opportunity,omitempty"`
	Challenge   *Slot            `json:"challenge,omitempty"`
	Lucky       LuckyElements    `json:"lucky"`
	DashaLord   astro.Body       `json:"dasha_lord"`
	Warnings    []string         `json:"warnings,omitempty"`
	Confidence  astro.Confidence `json:"confidence"`
}

// Params bundles the generator inputs.
type Params struct {
	Chart      *chart.BirthChart
	Birth      time.Time
	Numerology numerology.Profile
	Findings   []lalkitab.Finding
	Window     Window
	Profile    personalization.Profile
}

// categoryScore accumulates the three signal streams per category.
type categoryScore struct {
	base        float64
	opportunity float64
	challenge   float64
	// trigger is the transit body behind the strongest aspect, used to name
	// the slot key.
	trigger    astro.Body
	hasTrigger bool
	best       float64
}

// Generate scores every category over the window's transit samples and fills
// the focus, opportunity and challenge slots. Score per category is natal
// trait base plus transit trigger weight, multiplied by the personalization
// weight. Ties break by the fixed category priority.
func Generate(p Params) (Result, error) {
	if p.Chart == nil {
		return Result{}, fmt.Errorf("%w: chart required", errs.ErrInvalidInput)
	}
	samples := p.Window.Samples()
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("%w: window has no samples", errs.ErrInvalidInput)
	}

	scores := make(map[astro.Category]*categoryScore, 4)
	for _, c := range astro.CategoryPriority() {
		scores[c] = &categoryScore{}
	}
	natalBase(p, scores)

	for _, at := range samples {
		transits, err := ephemeris.Compute(at)
		if err != nil {
			return Result{}, err
		}
		// Fixed body order keeps the trigger tie-break deterministic.
		for _, tb := range astro.Bodies() {
			tLon := ephemeris.Sidereal(transits[tb].Lon, at)
			for _, nb := range astro.Bodies() {
				np := p.Chart.Positions[nb]
				asp, ok := matchAspect(tLon, np.Lon)
				if !ok {
					continue
				}
				s := scores[bodyCategory[nb]]
				if asp.Hard {
					s.challenge += asp.Weight
				} else {
					s.opportunity += asp.Weight
				}
				if asp.Weight > s.best {
					s.best = asp.Weight
					s.trigger = tb
					s.hasTrigger = true
				}
			}
		}
	}

	res := Result{
		Window:     p.Window,
		Lucky:      luckyElements(p.Chart),
		DashaLord:  chart.CurrentDashaLord(p.Chart, p.Birth, p.Window.Start),
		Warnings:   warningKeys(p.Findings),
		Confidence: p.Chart.Confidence,
	}
	res.Focus = pickSlot(p, scores, "focus", func(s *categoryScore) float64 {
		return s.base + s.opportunity + s.challenge
	})
	res.Opportunity = pickSlot(p, scores, "opportunity", func(s *categoryScore) float64 {
		if s.opportunity == 0 {
			return 0
		}
		return s.base + s.opportunity
	})
	res.Challenge = pickSlot(p, scores, "challenge", func(s *categoryScore) float64 {
		if s.challenge == 0 {
			return 0
		}
		return s.base + s.challenge
	})
	return res, nil
}

// natalBase seeds each category with the dominant-planet dignity plus the
// life-path affinity bonus.
func natalBase(p Params, scores map[astro.Category]*categoryScore) {
	for _, b := range astro.Bodies() {
		s := scores[bodyCategory[b]]
		if d := dignityScore(p.Chart.Dignities[b]); d > s.base {
			s.base = d
		}
	}
	if c, ok := lifePathCategory[p.Numerology.LifePath]; ok {
		scores[c].base += 0.25
	}
}

func dignityScore(d chart.Dignity) float64 {
	switch d {
	case chart.DignityExalted:
		return 1.0
	case chart.DignityOwnSign:
		return 0.75
	case chart.DignityNeutral:
		return 0.5
	default:
		return 0.25
	}
}

// pickSlot returns the winning category for one slot, or nil when no
// category carries any signal for it.
func pickSlot(p Params, scores map[astro.Category]*categoryScore, slot string, value func(*categoryScore) float64) *Slot {
	var won *Slot
	for _, c := range astro.CategoryPriority() {
		s := scores[c]
		raw := value(s)
		if raw == 0 {
			continue
		}
		weighted := raw * p.Profile.Weight(c)
		if won == nil || weighted > won.Score {
			won = &Slot{Category: c, Key: slotKey(c, slot, s), Score: weighted}
		}
	}
	return won
}

func slotKey(c astro.Category, slot string, s *categoryScore) string {
	if s.hasTrigger {
		return fmt.Sprintf("prediction.%s.transit.%s", c, s.trigger)
	}
	return fmt.Sprintf("prediction.%s.natal.%s", c, slot)
}

func matchAspect(transitLon, natalLon float64) (Aspect, bool) {
	sep := astro.NormalizeDeg(transitLon - natalLon)
	if sep > 180 {
		sep = 360 - sep
	}
	for _, a := range aspects {
		d := sep - a.Deg
		if d < 0 {
			d = -d
		}
		if d <= a.Orb {
			return a, true
		}
	}
	return Aspect{}, false
}

// luckyColorKeys and luckyNumbers follow the classical planet mapping.
var luckyColorKeys = map[astro.Body]string{
	astro.Sun:     "lucky.color.orange",
	astro.Moon:    "lucky.color.white",
	astro.Mercury: "lucky.color.green",
	astro.Venus:   "lucky.color.pink",
	astro.Mars:    "lucky.color.red",
	astro.Jupiter: "lucky.color.yellow",
	astro.Saturn:  "lucky.color.blue",
	astro.Rahu:    "lucky.color.grey",
	astro.Ketu:    "lucky.color.brown",
}

var luckyNumbers = map[astro.Body]int{
	astro.Sun:     1,
	astro.Moon:    2,
	astro.Jupiter: 3,
	astro.Rahu:    4,
	astro.Mercury: 5,
	astro.Venus:   6,
	astro.Ketu:    7,
	astro.Saturn:  8,
	astro.Mars:    9,
}

// luckyElements derives the dominant planet: best dignity, ties broken by
// the fixed body order so the result never flaps.
func luckyElements(c *chart.BirthChart) LuckyElements {
	dominant := astro.Sun
	bestScore := -1.0
	for _, b := range astro.Bodies() {
		if s := dignityScore(c.Dignities[b]); s > bestScore {
			bestScore = s
			dominant = b
		}
	}
	return LuckyElements{
		Planet:   dominant,
		ColorKey: luckyColorKeys[dominant],
		Number:   luckyNumbers[dominant],
	}
}

// warningKeys lifts high-severity debts into prediction warnings, ordered
// and deduplicated.
func warningKeys(findings []lalkitab.Finding) []string {
	seen := make(map[string]bool)
	var out []string
	for _, f := range findings {
		if f.Severity < 4 {
			continue
		}
		key := "prediction.warning." + string(f.Category)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
