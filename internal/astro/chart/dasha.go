package chart

import (
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
)

// Vimshottari mahadasha cycle: lord order and period lengths in years,
// anchored on Ashwini (nakshatra 0). The cycle totals 120 years.
var (
	dashaLords = []astro.Body{astro.Ketu, astro.Venus, astro.Sun, astro.Moon, astro.Mars, astro.Rahu, astro.Jupiter, astro.Saturn, astro.Mercury}
	dashaYears = []float64{7, 20, 6, 10, 7, 18, 16, 19, 17}
)

const yearDays = 365.25

// DashaPeriod is one mahadasha: a ruling lord with an explicit date range.
// Periods are half-open [Start, End).
type DashaPeriod struct {
	Lord  astro.Body `json:"lord"`
	Start time.Time  `json:"start"`
	End   time.Time  `json:"end"`
}

// NakshatraLord returns the Vimshottari lord of a nakshatra index.
func NakshatraLord(nakshatra int) astro.Body {
	return dashaLords[((nakshatra%9)+9)%9]
}

// DashaSequence derives the ordered, non-overlapping mahadasha periods from
// the birth nakshatra. The first period is shortened by the fraction of the
// nakshatra the Moon had already traversed at birth; subsequent periods
// follow the fixed cycle. The sequence covers at least `until`.
func DashaSequence(c *BirthChart, birth, until time.Time) []DashaPeriod {
	idx := ((c.NakshatraIndex % 9) + 9) % 9
	balance := (1 - c.NakshatraFraction) * dashaYears[idx]

	var periods []DashaPeriod
	start := birth
	end := start.Add(yearsToDuration(balance))
	periods = append(periods, DashaPeriod{Lord: dashaLords[idx], Start: start, End: end})

	for !end.After(until) {
		idx = (idx + 1) % len(dashaLords)
		start = end
		end = start.Add(yearsToDuration(dashaYears[idx]))
		periods = append(periods, DashaPeriod{Lord: dashaLords[idx], Start: start, End: end})
	}
	return periods
}

// CurrentDashaLord returns the lord ruling at `at`. Timestamps before birth
// fall back to the first period's lord.
func CurrentDashaLord(c *BirthChart, birth, at time.Time) astro.Body {
	seq := DashaSequence(c, birth, at)
	for _, p := range seq {
		if !at.Before(p.Start) && at.Before(p.End) {
			return p.Lord
		}
	}
	return seq[len(seq)-1].Lord
}

func yearsToDuration(years float64) time.Duration {
	return time.Duration(years * yearDays * 24 * float64(time.Hour))
}
