// Package astro holds the vocabulary shared by every computation engine:
// bodies, signs, guidance categories and the fixed category priority order.
// Engines live in subpackages and are pure functions over these types.
package astro

// Body identifies a tracked celestial body. Rahu and Ketu are the mean lunar
// nodes, kept as first-class bodies because the rule tables treat them as
// planets.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Rahu
	Ketu
)

var bodyNames = [...]string{"sun", "moon", "mercury", "venus", "mars", "jupiter", "saturn", "rahu", "ketu"}

func (b Body) String() string {
	if b < Sun || b > Ketu {
		return "unknown"
	}
	return bodyNames[b]
}

// Bodies returns every tracked body in a fixed order.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ketu}
}

// Sign is a sidereal zodiac sign, 0 = Aries.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"aries", "taurus", "gemini", "cancer", "leo", "virgo",
	"libra", "scorpio", "sagittarius", "capricorn", "aquarius", "pisces",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "unknown"
	}
	return signNames[s]
}

// SignOf maps an ecliptic longitude in degrees to its sign.
func SignOf(lon float64) Sign {
	return Sign(int(normalizeDeg(lon)/30) % 12)
}

// Element groups signs into the four classical elements, used by the family
// compatibility matrix.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

func (s Sign) Element() Element {
	switch s % 4 {
	case 0:
		return Fire
	case 1:
		return Earth
	case 2:
		return Air
	default:
		return Water
	}
}

// Category is a guidance category key. The core only ever emits these stable
// identifiers; localization happens outside the core.
type Category string

const (
	CategoryHealth        Category = "health"
	CategoryRelationships Category = "relationships"
	CategoryWealth        Category = "wealth"
	CategorySpiritual     Category = "spiritual"
)

// CategoryPriority is the fixed tie-break order used everywhere a single
// category must win.
func CategoryPriority() []Category {
	return []Category{CategoryHealth, CategoryRelationships, CategoryWealth, CategorySpiritual}
}

// CategoryRank returns the position of c in the priority order; unknown
// categories sort last.
func CategoryRank(c Category) int {
	for i, p := range CategoryPriority() {
		if p == c {
			return i
		}
	}
	return len(CategoryPriority())
}

// Severity is a karmic-debt severity tier, 1 (mild) to 5 (critical).
type Severity int

const (
	SeverityMild     Severity = 1
	SeverityModerate Severity = 3
	SeverityCritical Severity = 5
)

// Confidence flags whether a derived result was computed from a complete
// birth profile or degraded due to a missing birth time.
type Confidence string

const (
	ConfidenceFull    Confidence = "full"
	ConfidencePartial Confidence = "partial"
)

func normalizeDeg(d float64) float64 {
	d -= 360 * float64(int(d/360))
	if d < 0 {
		d += 360
	}
	return d
}

// NormalizeDeg wraps a degree value into [0, 360).
func NormalizeDeg(d float64) float64 { return normalizeDeg(d) }
