package chat

import (
	"strings"
	"testing"

	"github.com/mindmate/aura-server/internal/models"
)

func TestComposePersona(t *testing.T) {
	facts := []models.MemoryFact{
		{Key: "name", Value: "Asha", Importance: 10},
		{Key: "stress_trigger", Value: "exams", Importance: 9},
	}

	persona := ComposePersona(facts, "")

	if !strings.Contains(persona, "Aura AI") {
		t.Fatal("persona must carry the assistant identity")
	}
	if !strings.Contains(persona, "- name: Asha\n") {
		t.Fatal("persona must render facts as '- key: value' lines")
	}
	nameIdx := strings.Index(persona, "- name:")
	stressIdx := strings.Index(persona, "- stress_trigger:")
	if nameIdx < 0 || stressIdx < 0 || nameIdx > stressIdx {
		t.Fatal("fact order must follow the input slice")
	}
	if strings.Contains(persona, "appears happy") || strings.Contains(persona, "appears sad") {
		t.Fatal("no emotion instruction without a hint")
	}
}

func TestComposePersonaEmotionHints(t *testing.T) {
	happy := ComposePersona(nil, "happy")
	if !strings.Contains(happy, "warmth and enthusiasm") {
		t.Fatal("happy hint should add the enthusiastic acknowledgment line")
	}

	sad := ComposePersona(nil, "sad")
	if !strings.Contains(sad, "comforting line") {
		t.Fatal("sad hint should add the gentle-comfort line")
	}

	neutral := ComposePersona(nil, "neutral")
	if strings.Contains(neutral, "appears happy") || strings.Contains(neutral, "appears sad") {
		t.Fatal("neutral hint must not change the persona")
	}
}

func TestComposePersonaIsPure(t *testing.T) {
	facts := []models.MemoryFact{{Key: "name", Value: "Ravi"}}
	a := ComposePersona(facts, "happy")
	b := ComposePersona(facts, "happy")
	if a != b {
		t.Fatal("persona must be a pure function of its inputs")
	}
}
