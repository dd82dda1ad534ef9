// Package lalkitab evaluates a birth chart against the Lal Kitab rule table.
// The table ships embedded in the binary so the engine stays deterministic
// and needs no runtime configuration.
package lalkitab

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/astrosetu/astrosetu-backend/internal/astro"
)

//go:embed rules.yaml
var rulesYAML []byte

// Condition gates a rule beyond planet and house placement.
type Condition string

const (
	CondAny         Condition = "any"
	CondDebilitated Condition = "debilitated"
	CondRetrograde  Condition = "retrograde"
	// CondAfflicted matches a planet that is debilitated or shares a house
	// with a natural malefic (Saturn, Rahu, Ketu).
	CondAfflicted Condition = "afflicted"
)

// Rule is one row of the table. An empty Houses list matches any house.
type Rule struct {
	ID        string         `yaml:"id"`
	Planet    string         `yaml:"planet"`
	Houses    []int          `yaml:"houses"`
	Condition Condition      `yaml:"condition"`
	Category  astro.Category `yaml:"category"`
	Severity  astro.Severity `yaml:"severity"`
	Remedies  []string       `yaml:"remedies"`
}

// Body resolves the rule's planet name.
func (r Rule) Body() (astro.Body, bool) {
	for _, b := range astro.Bodies() {
		if b.String() == r.Planet {
			return b, true
		}
	}
	return 0, false
}

var rules []Rule

func init() {
	loaded, err := parseRules(rulesYAML)
	if err != nil {
		panic(fmt.Sprintf("lalkitab: embedded rule table invalid: %v", err))
	}
	rules = loaded
}

// Rules returns the full table in declaration order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

func parseRules(raw []byte) ([]Rule, error) {
	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rule table is empty")
	}
	seen := make(map[string]bool, len(doc.Rules))
	for i, r := range doc.Rules {
		if r.ID == "" {
			return nil, fmt.Errorf("rule %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("rule %q: duplicate id", r.ID)
		}
		seen[r.ID] = true
		if _, ok := r.Body(); !ok {
			return nil, fmt.Errorf("rule %q: unknown planet %q", r.ID, r.Planet)
		}
		switch r.Condition {
		case CondAny, CondDebilitated, CondRetrograde, CondAfflicted:
		default:
			return nil, fmt.Errorf("rule %q: unknown condition %q", r.ID, r.Condition)
		}
		if astro.CategoryRank(r.Category) >= len(astro.CategoryPriority()) {
			return nil, fmt.Errorf("rule %q: unknown category %q", r.ID, r.Category)
		}
		if r.Severity < 1 || r.Severity > 5 {
			return nil, fmt.Errorf("rule %q: severity %d out of [1,5]", r.ID, r.Severity)
		}
		for _, h := range r.Houses {
			if h < 1 || h > 12 {
				return nil, fmt.Errorf("rule %q: house %d out of [1,12]", r.ID, h)
			}
		}
		if len(r.Remedies) == 0 {
			return nil, fmt.Errorf("rule %q: at least one remedy required", r.ID)
		}
	}
	return doc.Rules, nil
}
