package lalkitab

import (
	"reflect"
	"testing"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
	"github.com/astrosetu/astrosetu-backend/internal/astro/chart"
	"github.com/astrosetu/astrosetu-backend/internal/astro/ephemeris"
)

// syntheticChart places every body in a harmless spot (house 3, neutral,
// direct) and lets a test override individual placements.
func syntheticChart() *chart.BirthChart {
	c := &chart.BirthChart{
		Positions: make(map[astro.Body]ephemeris.Position),
		Signs:     make(map[astro.Body]astro.Sign),
		Houses:    make(map[astro.Body]int),
		Dignities: make(map[astro.Body]chart.Dignity),
	}
	for _, b := range astro.Bodies() {
		c.Positions[b] = ephemeris.Position{}
		c.Houses[b] = 3
		c.Dignities[b] = chart.DignityNeutral
	}
	// Keep the malefics away from everyone else so "afflicted" rules stay
	// quiet unless a test arranges a conjunction.
	c.Houses[astro.Saturn] = 10
	c.Houses[astro.Rahu] = 5
	c.Houses[astro.Ketu] = 11
	return c
}

func findingIDs(fs []Finding) []string {
	ids := make([]string, len(fs))
	for i, f := range fs {
		ids[i] = f.RuleID
	}
	return ids
}

func hasFinding(fs []Finding, id string) bool {
	for _, f := range fs {
		if f.RuleID == id {
			return true
		}
	}
	return false
}

func TestRuleTableLoads(t *testing.T) {
	rs := Rules()
	if len(rs) == 0 {
		t.Fatal("embedded rule table is empty")
	}
	for _, r := range rs {
		if _, ok := r.Body(); !ok {
			t.Fatalf("rule %q: unresolvable planet %q", r.ID, r.Planet)
		}
	}
}

func TestManglikRule(t *testing.T) {
	for _, h := range []int{1, 2, 4, 7, 8, 12} {
		c := syntheticChart()
		c.Houses[astro.Mars] = h
		if !IsManglik(c) {
			t.Fatalf("mars in house %d must be manglik", h)
		}
		fs := Evaluate(c)
		if !hasFinding(fs, "mars_manglik") {
			t.Fatalf("mars in house %d: manglik rule not matched, got %v", h, findingIDs(fs))
		}
	}
	c := syntheticChart()
	c.Houses[astro.Mars] = 3
	if IsManglik(c) {
		t.Fatal("mars in house 3 must not be manglik")
	}
	if hasFinding(Evaluate(c), "mars_manglik") {
		t.Fatal("manglik rule matched outside its houses")
	}
}

func TestConditionDebilitated(t *testing.T) {
	c := syntheticChart()
	c.Dignities[astro.Sun] = chart.DignityDebilitated
	fs := Evaluate(c)
	if !hasFinding(fs, "sun_debilitated") {
		t.Fatalf("debilitated sun not matched, got %v", findingIDs(fs))
	}
	c.Dignities[astro.Sun] = chart.DignityExalted
	if hasFinding(Evaluate(c), "sun_debilitated") {
		t.Fatal("exalted sun must not match the debilitated rule")
	}
}

func TestConditionRetrograde(t *testing.T) {
	c := syntheticChart()
	c.Positions[astro.Mercury] = ephemeris.Position{Retrograde: true}
	if !hasFinding(Evaluate(c), "mercury_retrograde") {
		t.Fatal("retrograde mercury not matched")
	}
}

func TestConditionAfflicted(t *testing.T) {
	c := syntheticChart()
	// Moon conjunct Saturn.
	c.Houses[astro.Moon] = 10
	if !hasFinding(Evaluate(c), "moon_afflicted") {
		t.Fatal("moon conjunct saturn must count as afflicted")
	}

	c = syntheticChart()
	c.Dignities[astro.Moon] = chart.DignityDebilitated
	if !hasFinding(Evaluate(c), "moon_afflicted") {
		t.Fatal("debilitated moon must count as afflicted")
	}

	c = syntheticChart()
	if hasFinding(Evaluate(c), "moon_afflicted") {
		t.Fatal("unafflicted moon matched the affliction rule")
	}
}

func TestEvaluateOrderingAndDominant(t *testing.T) {
	c := syntheticChart()
	c.Houses[astro.Mars] = 7                              // severity 4, relationships
	c.Houses[astro.Saturn] = 8                            // severity 4, health
	c.Dignities[astro.Jupiter] = chart.DignityDebilitated // severity 3, spiritual

	fs := Evaluate(c)
	if len(fs) < 3 {
		t.Fatalf("expected at least 3 findings, got %v", findingIDs(fs))
	}
	for i := 1; i < len(fs); i++ {
		if fs[i].Severity > fs[i-1].Severity {
			t.Fatalf("findings not sorted by severity: %v", findingIDs(fs))
		}
	}
	// Saturn and Mars tie on severity; health outranks relationships.
	dom, ok := Dominant(fs)
	if !ok {
		t.Fatal("Dominant: no finding")
	}
	if dom.RuleID != "saturn_dusthana" {
		t.Fatalf("dominant = %s, want saturn_dusthana (health wins the tie)", dom.RuleID)
	}

	byCat := ByCategory(fs)
	if byCat[astro.CategoryRelationships].RuleID != "mars_manglik" {
		t.Fatalf("relationships top finding = %s, want mars_manglik", byCat[astro.CategoryRelationships].RuleID)
	}
	if byCat[astro.CategorySpiritual].RuleID != "jupiter_debilitated" {
		t.Fatalf("spiritual top finding = %s, want jupiter_debilitated", byCat[astro.CategorySpiritual].RuleID)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	c := syntheticChart()
	c.Houses[astro.Mars] = 1
	c.Houses[astro.Moon] = 8
	a := Evaluate(c)
	b := Evaluate(c)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical chart must yield identical findings")
	}
}

func TestDominantEmpty(t *testing.T) {
	if _, ok := Dominant(nil); ok {
		t.Fatal("Dominant(nil) must report no finding")
	}
}

func TestParseRulesRejectsBadTable(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"empty", "rules: []"},
		{"bad_planet", "rules:\n  - id: x\n    planet: pluto\n    condition: any\n    category: health\n    severity: 1\n    remedies: [a]"},
		{"bad_condition", "rules:\n  - id: x\n    planet: sun\n    condition: combust\n    category: health\n    severity: 1\n    remedies: [a]"},
		{"bad_severity", "rules:\n  - id: x\n    planet: sun\n    condition: any\n    category: health\n    severity: 9\n    remedies: [a]"},
		{"bad_house", "rules:\n  - id: x\n    planet: sun\n    houses: [13]\n    condition: any\n    category: health\n    severity: 1\n    remedies: [a]"},
		{"no_remedy", "rules:\n  - id: x\n    planet: sun\n    condition: any\n    category: health\n    severity: 1\n    remedies: []"},
		{"dup_id", "rules:\n  - id: x\n    planet: sun\n    condition: any\n    category: health\n    severity: 1\n    remedies: [a]\n  - id: x\n    planet: moon\n    condition: any\n    category: health\n    severity: 1\n    remedies: [a]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseRules([]byte(tc.yaml)); err == nil {
				t.Fatal("expected parse error")
			}
		})
	}
}
