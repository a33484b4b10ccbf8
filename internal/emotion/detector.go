// Package emotion is a placeholder for the visual emotion-recognition
// model. It returns a weighted random label; there is no inference here.
package emotion

import (
	"math/rand"

	"github.com/mindmate/aura-server/internal/models"
)

// labels is the sampling pool: neutral carries a 3/5 weight so idle
// camera frames don't swing the companion's tone back and forth.
var labels = []string{"happy", "sad", "neutral", "neutral", "neutral"}

// Detect returns a coarse affect label with a confidence in [60.0, 95.0].
func Detect() models.EmotionResult {
	return models.EmotionResult{
		TopEmotion: labels[rand.Intn(len(labels))],
		Confidence: 60.0 + rand.Float64()*35.0,
	}
}
