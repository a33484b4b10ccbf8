package chat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mindmate/aura-server/internal/store"
)

func openMemoryStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	db, err := store.OpenMemoryDB(filepath.Join(t.TempDir(), "memory.db"))
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return store.NewMemoryStore(db)
}

func TestNameRule(t *testing.T) {
	rules := DefaultRules()
	name := rules[0]

	cases := []struct {
		in    string
		want  string
		fires bool
	}{
		{"My name is Asha", "Asha", true},
		{"my name is  Ravi Kumar ", "Ravi Kumar", true},
		{"yes, my name is Meera", "Meera", true},
		// Everything after the last "is" wins, an accepted quirk.
		{"my name is John and this is fine", "fine", true},
		{"I never said it", "", false},
	}

	for _, tc := range cases {
		got, ok := name.Match(tc.in)
		if ok != tc.fires {
			t.Fatalf("%q: fires=%v, want %v", tc.in, ok, tc.fires)
		}
		if ok && got != tc.want {
			t.Fatalf("%q: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStressRule(t *testing.T) {
	rules := DefaultRules()
	stress := rules[1]

	if _, ok := stress.Match("My EXAM is causing me STRESS"); !ok {
		t.Fatal("rule should be case-insensitive")
	}
	if v, _ := stress.Match("exams are stressful"); v != "exams" {
		t.Fatalf("expected static value 'exams', got %q", v)
	}
	if _, ok := stress.Match("exams are fine"); ok {
		t.Fatal("rule needs both substrings")
	}
	if _, ok := stress.Match("I am stressed about work"); ok {
		t.Fatal("rule needs both substrings")
	}
}

func TestExtractorWritesFacts(t *testing.T) {
	ctx := context.Background()
	ms := openMemoryStore(t)
	ex := NewExtractor(DefaultRules(), ms)

	if err := ex.Extract(ctx, "u1", "My name is Asha and my exam stress is bad"); err != nil {
		t.Fatalf("extract: %v", err)
	}

	facts, err := ms.Get(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	byKey := map[string]string{}
	importance := map[string]int{}
	for _, f := range facts {
		byKey[f.Key] = f.Value
		importance[f.Key] = f.Importance
	}

	if byKey["name"] != "bad" {
		// Last "is" in the sentence is in "is bad".
		t.Fatalf("expected name fact from last 'is', got %q", byKey["name"])
	}
	if byKey["stress_trigger"] != "exams" {
		t.Fatalf("expected stress_trigger=exams, got %q", byKey["stress_trigger"])
	}
	if importance["name"] != 10 || importance["stress_trigger"] != 9 {
		t.Fatalf("unexpected importances: %+v", importance)
	}
}

func TestExtractorNoMatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	ms := openMemoryStore(t)
	ex := NewExtractor(DefaultRules(), ms)

	if err := ex.Extract(ctx, "u1", "just saying hello"); err != nil {
		t.Fatalf("extract: %v", err)
	}

	facts, err := ms.Get(ctx, "u1", 5)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(facts) != 0 {
		t.Fatalf("expected no facts, got %d", len(facts))
	}
}

func TestLoadRulesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := `rules:
  - key: sleep_trigger
    importance: 7
    contains: ["sleep", "tired"]
    value: "poor sleep"
  - key: ignored
    contains: []
    value: "never loads"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	// Defaults plus the one valid custom rule.
	if len(rules) != len(DefaultRules())+1 {
		t.Fatalf("expected %d rules, got %d", len(DefaultRules())+1, len(rules))
	}

	custom := rules[len(rules)-1]
	if custom.Key != "sleep_trigger" || custom.Importance != 7 {
		t.Fatalf("unexpected custom rule: %+v", custom)
	}
	if v, ok := custom.Match("I can't SLEEP, so tired"); !ok || v != "poor sleep" {
		t.Fatalf("custom rule should fire, got (%q, %v)", v, ok)
	}
	if _, ok := custom.Match("slept great"); ok {
		t.Fatal("custom rule needs every substring")
	}
}

func TestLoadRulesEmptyPath(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("load rules: %v", err)
	}
	if len(rules) != len(DefaultRules()) {
		t.Fatalf("expected defaults only, got %d rules", len(rules))
	}
}
