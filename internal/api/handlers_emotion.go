package api

import (
	"net/http"

	"github.com/mindmate/aura-server/internal/emotion"
)

// EmotionHandler serves the emotion-detection stub.
type EmotionHandler struct{}

func NewEmotionHandler() *EmotionHandler {
	return &EmotionHandler{}
}

// Detect handles POST /detect_emotion. No inference happens; the client
// gets a weighted random label until the real model ships.
func (h *EmotionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, emotion.Detect())
}
