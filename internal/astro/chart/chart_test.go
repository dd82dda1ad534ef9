package chart

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Birth 1990-05-15 14:30 IST (UTC+5:30) in Mumbai.
func mumbaiInput() Input {
	return Input{
		BirthUTC:     time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC),
		HasBirthTime: true,
		Lat:          19.076,
		Lon:          72.877,
	}
}

func TestBuildIdempotent(t *testing.T) {
	first, err := Build(mumbaiInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(mumbaiInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical input must produce an identical chart")
	}
}

func TestBuildMumbaiScenario(t *testing.T) {
	c, err := Build(mumbaiInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Confidence != astro.ConfidenceFull {
		t.Fatalf("confidence = %s, want full", c.Confidence)
	}
	// Known values for this birth data; a regression in the sidereal math
	// cannot slip through silently.
	if c.Ascendant != astro.Leo {
		t.Fatalf("ascendant = %s (%.4f°), want Leo", c.Ascendant, c.AscendantLon)
	}
	if math.Abs(c.AscendantLon-147.48) > 0.1 {
		t.Fatalf("ascendant longitude %.4f°, want ~147.48°", c.AscendantLon)
	}
	if c.NakshatraIndex != 20 {
		t.Fatalf("nakshatra index = %d, want 20 (Purva Ashadha)", c.NakshatraIndex)
	}
	if moon := c.Signs[astro.Moon]; moon != astro.Capricorn {
		t.Fatalf("moon sign = %s (%.4f°), want Capricorn", moon, c.Positions[astro.Moon].Lon)
	}
}

func TestHousePartition(t *testing.T) {
	c, err := Build(mumbaiInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	// Every degree of the ecliptic must land in exactly one house and houses
	// must be contiguous 30° segments counted from the ascendant.
	for deg := 0; deg < 360; deg++ {
		h := houseOf(float64(deg), c.AscendantLon)
		if h < 1 || h > 12 {
			t.Fatalf("degree %d: house %d out of [1,12]", deg, h)
		}
		wantHouse := int(astro.NormalizeDeg(float64(deg)-c.AscendantLon)/30) + 1
		if h != wantHouse {
			t.Fatalf("degree %d: house %d, want %d", deg, h, wantHouse)
		}
	}
	for b, h := range c.Houses {
		if h < 1 || h > 12 {
			t.Fatalf("%s: house %d out of [1,12]", b, h)
		}
	}
}

func TestNakshatraBounds(t *testing.T) {
	dates := []time.Time{
		time.Date(1942, 3, 9, 4, 15, 0, 0, time.UTC),
		time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2031, 12, 25, 22, 45, 0, 0, time.UTC),
	}
	for _, at := range dates {
		c, err := Build(Input{BirthUTC: at, HasBirthTime: true, Lat: 28.7, Lon: 77.1})
		if err != nil {
			t.Fatalf("Build(%s): %v", at, err)
		}
		if c.NakshatraIndex < 0 || c.NakshatraIndex > 26 {
			t.Fatalf("%s: nakshatra %d out of [0,26]", at, c.NakshatraIndex)
		}
		if c.NakshatraFraction < 0 || c.NakshatraFraction >= 1 {
			t.Fatalf("%s: nakshatra fraction %.4f out of [0,1)", at, c.NakshatraFraction)
		}
	}
}

func TestBuildWithoutBirthTime(t *testing.T) {
	in := mumbaiInput()
	in.HasBirthTime = false
	c, err := Build(in)
	if err != nil {
		t.Fatalf("missing birth time must not fail: %v", err)
	}
	if c.Confidence != astro.ConfidencePartial {
		t.Fatalf("confidence = %s, want partial", c.Confidence)
	}
	if c.Ascendant != c.Signs[astro.Sun] {
		t.Fatalf("whole-sign fallback: ascendant %s, want sun sign %s", c.Ascendant, c.Signs[astro.Sun])
	}
}

func TestBuildRejectsBadCoordinates(t *testing.T) {
	in := mumbaiInput()
	in.Lat = 91
	if _, err := Build(in); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestDignityTable(t *testing.T) {
	cases := []struct {
		body astro.Body
		sign astro.Sign
		want Dignity
	}{
		{astro.Sun, astro.Aries, DignityExalted},
		{astro.Sun, astro.Libra, DignityDebilitated},
		{astro.Sun, astro.Leo, DignityOwnSign},
		{astro.Sun, astro.Gemini, DignityNeutral},
		{astro.Saturn, astro.Libra, DignityExalted},
		{astro.Mars, astro.Cancer, DignityDebilitated},
		{astro.Mercury, astro.Virgo, DignityExalted},
	}
	for _, tc := range cases {
		if got := dignityOf(tc.body, tc.sign); got != tc.want {
			t.Fatalf("dignityOf(%s, %s) = %s, want %s", tc.body, tc.sign, got, tc.want)
		}
	}
}
