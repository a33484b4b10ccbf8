package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mindmate/aura-server/internal/store"
)

// Rule is one memory-extraction heuristic. Match inspects the raw message
// and returns the value to remember. Rules are independent; any number
// may fire on the same message, and they target distinct keys.
type Rule struct {
	Key        string
	Importance int
	Match      func(text string) (value string, ok bool)
}

// DefaultRules returns the built-in heuristics. Matching is naive
// substring search; false positives are an accepted limitation.
func DefaultRules() []Rule {
	return []Rule{
		{
			Key:        "name",
			Importance: 10,
			Match: func(text string) (string, bool) {
				if !strings.Contains(strings.ToLower(text), "my name is") {
					return "", false
				}
				// Take everything after the last "is" in the original
				// text, so "yes my name is Asha" yields "Asha".
				idx := strings.LastIndex(text, "is")
				if idx < 0 {
					return strings.TrimSpace(text), true
				}
				return strings.TrimSpace(text[idx+2:]), true
			},
		},
		{
			Key:        "stress_trigger",
			Importance: 9,
			Match: func(text string) (string, bool) {
				lower := strings.ToLower(text)
				if strings.Contains(lower, "exam") && strings.Contains(lower, "stress") {
					return "exams", true
				}
				return "", false
			},
		},
	}
}

// ruleFile is the YAML shape of PERSONA_RULES_PATH: extra substring rules
// that remember a static value when every listed substring appears.
type ruleFile struct {
	Rules []struct {
		Key        string   `yaml:"key"`
		Importance int      `yaml:"importance"`
		Contains   []string `yaml:"contains"`
		Value      string   `yaml:"value"`
	} `yaml:"rules"`
}

// LoadRules returns the default rules plus any rules defined in the
// optional YAML file at path. An empty path loads only the defaults.
func LoadRules(path string) ([]Rule, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	for _, r := range rf.Rules {
		if r.Key == "" || len(r.Contains) == 0 || r.Value == "" {
			continue
		}
		importance := r.Importance
		if importance == 0 {
			importance = 5
		}
		needles := make([]string, len(r.Contains))
		for i, n := range r.Contains {
			needles[i] = strings.ToLower(n)
		}
		value := r.Value
		rules = append(rules, Rule{
			Key:        r.Key,
			Importance: importance,
			Match: func(text string) (string, bool) {
				lower := strings.ToLower(text)
				for _, n := range needles {
					if !strings.Contains(lower, n) {
						return "", false
					}
				}
				return value, true
			},
		})
	}

	return rules, nil
}

// Extractor runs rules against incoming messages and writes matches to
// the memory store.
type Extractor struct {
	rules  []Rule
	memory *store.MemoryStore
}

func NewExtractor(rules []Rule, memory *store.MemoryStore) *Extractor {
	return &Extractor{rules: rules, memory: memory}
}

// Extract applies every rule to the message and upserts each match.
// The first storage error aborts the remaining rules.
func (e *Extractor) Extract(ctx context.Context, userID, message string) error {
	for _, r := range e.rules {
		value, ok := r.Match(message)
		if !ok {
			continue
		}
		if err := e.memory.Upsert(ctx, userID, r.Key, value, r.Importance); err != nil {
			return fmt.Errorf("apply rule %q: %w", r.Key, err)
		}
	}
	return nil
}
