package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate/aura-server/internal/chat"
	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// ChatHandler serves the AI conversation surface: the exchange itself,
// session listing and deletion, and raw history.
type ChatHandler struct {
	svc      *chat.Service
	messages *store.MessageStore
}

func NewChatHandler(svc *chat.Service, messages *store.MessageStore) *ChatHandler {
	return &ChatHandler{svc: svc, messages: messages}
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	resp, err := h.svc.Exchange(r.Context(), &req)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			writeError(w, http.StatusBadRequest, "message is required")
			return
		}
		// Upstream and storage failures both surface here; the error text
		// is passed through to match the client's existing handling.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// sessionPreviewLen is how many characters of the latest message the
// session list shows.
const sessionPreviewLen = 30

// Sessions handles GET /sessions/{id}, where id is a user id: one row
// per session, newest first, previewed by its latest message.
func (h *ChatHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	latest, err := h.messages.Sessions(r.Context(), userID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []models.SessionSummary{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summaries := make([]models.SessionSummary, 0, len(latest))
	for _, m := range latest {
		summaries = append(summaries, models.SessionSummary{
			SessionID: m.SessionID,
			Preview:   preview(m.Message),
			Timestamp: m.Timestamp,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// DeleteSession handles DELETE /sessions/{id}, where id is a session id:
// removes every message of the session.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	n, err := h.messages.DeleteSession(r.Context(), sessionID)
	if errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, "chat store not configured")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if n == 0 {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session deleted",
	})
}

// History handles GET /history/{session_id}: the session's messages
// oldest first.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "session_id")

	msgs, err := h.messages.History(r.Context(), sessionID, "")
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []models.ChatMessage{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// preview truncates a message to its first characters for list display.
// Rune-based so multibyte text is never split mid-character.
func preview(message string) string {
	runes := []rune(message)
	if len(runes) > sessionPreviewLen {
		runes = runes[:sessionPreviewLen]
	}
	return string(runes) + "..."
}
