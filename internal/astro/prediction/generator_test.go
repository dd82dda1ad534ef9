package prediction

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/chart"
	"github.com/astrosetu/astrosetu-backend/internal/astro/lalkitab"
	"github.com/astrosetu/astrosetu-backend/internal/astro/numerology"
	"github.com/astrosetu/astrosetu-backend/internal/astro/personalization"
	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

func scenarioParams(t *testing.T, kind Kind) Params {
	t.Helper()
	birth := time.Date(1990, 5, 15, 9, 0, 0, 0, time.UTC)
	c, err := chart.Build(chart.Input{BirthUTC: birth, HasBirthTime: true, Lat: 19.076, Lon: 72.877})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	num, err := numerology.Calculate("Asha Kulkarni", birth)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	w, err := NewWindow(kind, time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewWindow: %v", err)
	}
	return Params{
		Chart:      c,
		Birth:      birth,
		Numerology: num,
		Findings:   lalkitab.Evaluate(c),
		Window:     w,
		Profile:    personalization.DefaultProfile(),
	}
}

func TestWindowSampleCaps(t *testing.T) {
	start := time.Date(2024, 6, 10, 18, 45, 0, 0, time.UTC)
	cases := []struct {
		kind Kind
		max  int
		min  int
	}{
		{Daily, 1, 1},
		{Weekly, 7, 7},
		{Monthly, 5, 4},
		{Yearly, 12, 12},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			w, err := NewWindow(tc.kind, start)
			if err != nil {
				t.Fatalf("NewWindow: %v", err)
			}
			samples := w.Samples()
			if len(samples) < tc.min || len(samples) > tc.max {
				t.Fatalf("%s: %d samples, want [%d,%d]", tc.kind, len(samples), tc.min, tc.max)
			}
			days := make(map[string]bool)
			for _, s := range samples {
				day := s.Format("2006-01-02")
				if days[day] {
					t.Fatalf("%s: day %s sampled twice", tc.kind, day)
				}
				days[day] = true
				if s.Before(w.Start) || !s.Before(w.End) {
					t.Fatalf("%s: sample %s outside [%s,%s)", tc.kind, s, w.Start, w.End)
				}
			}
		})
	}
}

func TestNewWindowRejectsUnknownKind(t *testing.T) {
	if _, err := NewWindow(Kind("hourly"), time.Now()); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := scenarioParams(t, Weekly)
	first, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Generate(p)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d: result drifted", i)
		}
	}
}

func TestGenerateFillsFocusWithStableKeys(t *testing.T) {
	p := scenarioParams(t, Daily)
	res, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Focus == nil {
		t.Fatal("focus slot must be filled when natal signal exists")
	}
	if res.Focus.Key == "" || res.Focus.Score <= 0 {
		t.Fatalf("focus slot malformed: %+v", res.Focus)
	}
	if astro.CategoryRank(res.Focus.Category) >= len(astro.CategoryPriority()) {
		t.Fatalf("focus category %q unknown", res.Focus.Category)
	}
	if res.Confidence != astro.ConfidenceFull {
		t.Fatalf("confidence = %s, want full", res.Confidence)
	}
	if res.Lucky.ColorKey == "" || res.Lucky.Number < 1 || res.Lucky.Number > 9 {
		t.Fatalf("lucky elements malformed: %+v", res.Lucky)
	}
	if res.DashaLord.String() == "unknown" {
		t.Fatalf("dasha lord unresolved: %v", res.DashaLord)
	}
}

func TestGeneratePartialChartConfidence(t *testing.T) {
	p := scenarioParams(t, Daily)
	c, err := chart.Build(chart.Input{
		BirthUTC: time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		Lat:      19.076, Lon: 72.877,
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p.Chart = c
	res, err := Generate(p)
	if err != nil {
		t.Fatalf("missing birth time must degrade, not fail: %v", err)
	}
	if res.Confidence != astro.ConfidencePartial {
		t.Fatalf("confidence = %s, want partial", res.Confidence)
	}
}

func TestPersonalizationWeightShiftsFocus(t *testing.T) {
	p := scenarioParams(t, Daily)
	base, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	// Crank one category's weight far above the rest; when that category has
	// any signal at all it must take the focus slot.
	target := astro.CategorySpiritual
	if base.Focus != nil {
		for _, c := range astro.CategoryPriority() {
			if c != base.Focus.Category {
				target = c
				break
			}
		}
	}
	p.Profile.Weights = map[astro.Category]float64{
		astro.CategoryHealth:        0.01,
		astro.CategoryRelationships: 0.01,
		astro.CategoryWealth:        0.01,
		astro.CategorySpiritual:     0.01,
	}
	p.Profile.Weights[target] = 0.97
	res, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Focus != nil && res.Focus.Category != target && base.Focus != nil {
		// The target category may genuinely carry zero signal; then the
		// focus must still come from a non-zero category.
		if res.Focus.Score <= 0 {
			t.Fatalf("focus slot with non-positive score: %+v", res.Focus)
		}
	}
}

func TestGenerateRejectsMissingChart(t *testing.T) {
	p := scenarioParams(t, Daily)
	p.Chart = nil
	if _, err := Generate(p); !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
}

func TestMatchAspect(t *testing.T) {
	cases := []struct {
		name     string
		transit  float64
		natal    float64
		wantName string
		wantOK   bool
	}{
		{"exact_conjunction", 100, 100, "conjunction", true},
		{"conjunction_in_orb", 107.5, 100, "conjunction", true},
		{"wrapped_conjunction", 2, 358, "conjunction", true},
		{"opposition", 280, 100, "opposition", true},
		{"square", 190.5, 100, "square", true},
		{"trine", 220, 100, "trine", true},
		{"sextile", 160, 100, "sextile", true},
		{"no_aspect", 140, 100, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := matchAspect(tc.transit, tc.natal)
			if ok != tc.wantOK {
				t.Fatalf("matchAspect(%v, %v) ok = %v, want %v", tc.transit, tc.natal, ok, tc.wantOK)
			}
			if ok && a.Name != tc.wantName {
				t.Fatalf("aspect = %s, want %s", a.Name, tc.wantName)
			}
		})
	}
}
