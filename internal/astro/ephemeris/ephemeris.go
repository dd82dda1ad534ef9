// Package ephemeris computes geocentric ecliptic positions for the tracked
// bodies from truncated mean orbital elements. The model is analytic and
// fully deterministic: the same timestamp always yields bit-identical output.
// Accuracy is a small fraction of a degree over the supported range, which is
// more than enough for sign, house and nakshatra assignment.
package ephemeris

import (
	"fmt"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Position is a pure derived value, never persisted as authoritative state.
type Position struct {
	Lon        float64 `json:"lon"`   // geocentric ecliptic longitude, degrees [0,360)
	Lat        float64 `json:"lat"`   // ecliptic latitude, degrees
	Speed      float64 `json:"speed"` // degrees per day along the ecliptic
	Retrograde bool    `json:"retrograde"`
}

var (
	rangeMin = time.Date(1800, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeMax = time.Date(2101, 1, 1, 0, 0, 0, 0, time.UTC)
)

// ValidateRange rejects timestamps outside the model's validity window.
func ValidateRange(t time.Time) error {
	if t.Before(rangeMin) || !t.Before(rangeMax) {
		return fmt.Errorf("%w: %s not in [1800, 2100]", errs.ErrUnsupportedRange, t.UTC().Format(time.RFC3339))
	}
	return nil
}

// ValidateCoordinates checks geographic input bounds.
func ValidateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude %.4f out of [-90,90]", errs.ErrInvalidInput, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("%w: longitude %.4f out of [-180,180]", errs.ErrInvalidInput, lon)
	}
	return nil
}

// Compute returns the position of every tracked body at t (UTC).
func Compute(t time.Time) (map[astro.Body]Position, error) {
	if err := ValidateRange(t); err != nil {
		return nil, err
	}
	out := make(map[astro.Body]Position, len(astro.Bodies()))
	for _, b := range astro.Bodies() {
		out[b] = computeBody(t, b)
	}
	return out, nil
}

// ComputeBody returns the position of a single body at t (UTC).
func ComputeBody(t time.Time, b astro.Body) (Position, error) {
	if err := ValidateRange(t); err != nil {
		return Position{}, err
	}
	return computeBody(t, b), nil
}

func computeBody(t time.Time, b astro.Body) Position {
	const half = 12 * time.Hour
	lon, lat := eclipticAt(daysSinceEpoch(t), b)
	before, _ := eclipticAt(daysSinceEpoch(t.Add(-half)), b)
	after, _ := eclipticAt(daysSinceEpoch(t.Add(half)), b)
	speed := wrapDelta(after - before) // 24h baseline, so already deg/day
	return Position{
		Lon:        astro.NormalizeDeg(lon),
		Lat:        lat,
		Speed:      speed,
		Retrograde: speed < 0,
	}
}

// Ayanamsa returns the Lahiri ayanamsa approximation at t, in degrees.
func Ayanamsa(t time.Time) float64 {
	years := float64(t.Unix())/(365.25*86400) + 1970 - 2000
	return 23.85 + 0.0139*years
}

// Sidereal converts a tropical longitude to sidereal at t.
func Sidereal(lonTropical float64, t time.Time) float64 {
	return astro.NormalizeDeg(lonTropical - Ayanamsa(t))
}

// JulianDay converts t to a Julian day number.
func JulianDay(t time.Time) float64 {
	return float64(t.UTC().UnixMilli())/86400000.0 + 2440587.5
}

// daysSinceEpoch is the day count d used by the element polynomials
// (epoch 2000-01-01 00:00 UTC minus one day, per the element set in series.go).
func daysSinceEpoch(t time.Time) float64 {
	return JulianDay(t) - 2451543.5
}

// wrapDelta maps a longitude difference into (-180, 180].
func wrapDelta(d float64) float64 {
	d = astro.NormalizeDeg(d)
	if d > 180 {
		d -= 360
	}
	return d
}
