// Package chart derives a sidereal birth chart (ascendant, houses, nakshatra,
// dignities) from a birth moment and place. Building is idempotent: identical
// input always yields an identical chart.
//
// Houses use the equal-house system anchored on the exact ascendant degree,
// which keeps the partition of the ecliptic into 12 contiguous 30° segments
// trivially reproducible.
package chart

import (
	"math"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/ephemeris"
)

// Input is the birth data a chart is derived from. When HasBirthTime is
// false, BirthUTC carries the date only and the chart degrades to solar
// elements with partial confidence instead of failing.
type Input struct {
	BirthUTC     time.Time
	HasBirthTime bool
	Lat          float64
	Lon          float64
}

// Dignity classifies how well a planet is placed in its sign.
type Dignity int

const (
	DignityDebilitated Dignity = iota
	DignityNeutral
	DignityOwnSign
	DignityExalted
)

var dignityNames = [...]string{"debilitated", "neutral", "own_sign", "exalted"}

func (d Dignity) String() string {
	if d < DignityDebilitated || d > DignityExalted {
		return "unknown"
	}
	return dignityNames[d]
}

// BirthChart holds the sidereal chart. All longitudes are sidereal degrees.
type BirthChart struct {
	Ascendant    astro.Sign
	AscendantLon float64

	Positions map[astro.Body]ephemeris.Position
	Signs     map[astro.Body]astro.Sign
	Houses    map[astro.Body]int
	Dignities map[astro.Body]Dignity

	NakshatraIndex    int
	NakshatraFraction float64 // elapsed fraction within the nakshatra, [0,1)

	Confidence astro.Confidence
}

const nakshatraSpan = 360.0 / 27.0

// Build computes the chart for in. Unknown birth time never fails; it
// produces a partial-confidence solar chart evaluated at 12:00 UTC with
// whole-sign houses counted from the Sun sign.
func Build(in Input) (*BirthChart, error) {
	if err := ephemeris.ValidateCoordinates(in.Lat, in.Lon); err != nil {
		return nil, err
	}
	at := in.BirthUTC
	if !in.HasBirthTime {
		at = time.Date(at.Year(), at.Month(), at.Day(), 12, 0, 0, 0, time.UTC)
	}
	tropical, err := ephemeris.Compute(at)
	if err != nil {
		return nil, err
	}

	c := &BirthChart{
		Positions:  make(map[astro.Body]ephemeris.Position, len(tropical)),
		Signs:      make(map[astro.Body]astro.Sign, len(tropical)),
		Houses:     make(map[astro.Body]int, len(tropical)),
		Dignities:  make(map[astro.Body]Dignity, len(tropical)),
		Confidence: astro.ConfidenceFull,
	}
	for b, p := range tropical {
		p.Lon = ephemeris.Sidereal(p.Lon, at)
		c.Positions[b] = p
		c.Signs[b] = astro.SignOf(p.Lon)
	}

	if in.HasBirthTime {
		asc := ascendantLon(at, in.Lat, in.Lon)
		c.AscendantLon = ephemeris.Sidereal(asc, at)
	} else {
		// Whole-sign fallback: the Sun sign boundary acts as the first house.
		c.AscendantLon = float64(int(c.Signs[astro.Sun])) * 30
		c.Confidence = astro.ConfidencePartial
	}
	c.Ascendant = astro.SignOf(c.AscendantLon)

	for b, p := range c.Positions {
		c.Houses[b] = houseOf(p.Lon, c.AscendantLon)
		c.Dignities[b] = dignityOf(b, c.Signs[b])
	}

	moonLon := c.Positions[astro.Moon].Lon
	c.NakshatraIndex = int(moonLon/nakshatraSpan) % 27
	c.NakshatraFraction = math.Mod(moonLon, nakshatraSpan) / nakshatraSpan

	return c, nil
}

// houseOf assigns an equal house counted from the ascendant degree, 1..12.
func houseOf(lon, ascLon float64) int {
	return int(astro.NormalizeDeg(lon-ascLon)/30) + 1
}

// ascendantLon returns the tropical ecliptic longitude rising at the eastern
// horizon, from local sidereal time and the standard horizon formula with
// mean obliquity.
func ascendantLon(at time.Time, lat, lon float64) float64 {
	const obliquity = 23.4393
	jd := ephemeris.JulianDay(at)
	gmst := astro.NormalizeDeg(280.46061837 + 360.98564736629*(jd-2451545.0))
	ramc := astro.NormalizeDeg(gmst + lon)

	y := cosd(ramc)
	x := -(sind(ramc)*cosd(obliquity) + tand(lat)*sind(obliquity))
	return astro.NormalizeDeg(atan2d(y, x))
}

type signPair struct {
	exalted astro.Sign
	fallen  astro.Sign
	own     []astro.Sign
}

var dignityTable = map[astro.Body]signPair{
	astro.Sun:     {astro.Aries, astro.Libra, []astro.Sign{astro.Leo}},
	astro.Moon:    {astro.Taurus, astro.Scorpio, []astro.Sign{astro.Cancer}},
	astro.Mercury: {astro.Virgo, astro.Pisces, []astro.Sign{astro.Gemini, astro.Virgo}},
	astro.Venus:   {astro.Pisces, astro.Virgo, []astro.Sign{astro.Taurus, astro.Libra}},
	astro.Mars:    {astro.Capricorn, astro.Cancer, []astro.Sign{astro.Aries, astro.Scorpio}},
	astro.Jupiter: {astro.Cancer, astro.Capricorn, []astro.Sign{astro.Sagittarius, astro.Pisces}},
	astro.Saturn:  {astro.Libra, astro.Aries, []astro.Sign{astro.Capricorn, astro.Aquarius}},
	astro.Rahu:    {astro.Taurus, astro.Scorpio, nil},
	astro.Ketu:    {astro.Scorpio, astro.Taurus, nil},
}

func dignityOf(b astro.Body, s astro.Sign) Dignity {
	row, ok := dignityTable[b]
	if !ok {
		return DignityNeutral
	}
	switch {
	case s == row.exalted:
		return DignityExalted
	case s == row.fallen:
		return DignityDebilitated
	default:
		for _, own := range row.own {
			if s == own {
				return DignityOwnSign
			}
		}
		return DignityNeutral
	}
}

func sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180) }
func cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180) }
func tand(deg float64) float64 { return math.Tan(deg * math.Pi / 180) }
func atan2d(y, x float64) float64 {
	return math.Atan2(y, x) * 180 / math.Pi
}
