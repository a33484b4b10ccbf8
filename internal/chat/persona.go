package chat

import (
	"strings"

	"github.com/mindmate/aura-server/internal/models"
)

const personaTemplate = "You are Aura AI, a compassionate and supportive mental health assistant " +
	"created by the MindMate team. " +
	"You understand Indian cultural values. " +
	"Always respond calmly, gently, and empathetically. " +
	"Never mention memory, databases, or internal systems.\n\n" +
	"User background (use naturally):\n"

// Canned emotion reactions. These nudge the model's opening line; the
// reply itself is still generated.
const (
	happyInstruction = "\nThe user appears happy right now. Open by acknowledging their positive mood with warmth and enthusiasm."
	sadInstruction   = "\nThe user appears sad right now. Open with a gentle, comforting line before anything else."
)

// ComposePersona renders the system instruction from the current memory
// snapshot and an optional emotion hint. Pure function of its inputs;
// fact order is preserved, so importance ranking carries into the prompt.
func ComposePersona(facts []models.MemoryFact, emotionHint string) string {
	var b strings.Builder
	b.WriteString(personaTemplate)

	for _, f := range facts {
		b.WriteString("- ")
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteString("\n")
	}

	switch emotionHint {
	case "happy":
		b.WriteString(happyInstruction)
	case "sad":
		b.WriteString(sadInstruction)
	}

	return b.String()
}
