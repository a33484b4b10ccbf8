package api

import (
	"errors"
	"net/http"

	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// P2PHandler serves direct messages between users.
type P2PHandler struct {
	p2p *store.P2PStore
}

func NewP2PHandler(p2p *store.P2PStore) *P2PHandler {
	return &P2PHandler{p2p: p2p}
}

// Send handles POST /p2p/send.
func (h *P2PHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendP2PRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SenderID == "" || req.ReceiverID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "sender_id, receiver_id and message are required")
		return
	}

	m, err := h.p2p.Send(r.Context(), req.SenderID, req.ReceiverID, req.Message)
	if errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, "database not connected")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, m)
}

// Messages handles POST /p2p/messages: the conversation between two
// users, both directions, oldest first.
func (h *P2PHandler) Messages(w http.ResponseWriter, r *http.Request) {
	var req models.P2PConversationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID == "" || req.PeerID == "" {
		writeError(w, http.StatusBadRequest, "user_id and peer_id are required")
		return
	}

	msgs, err := h.p2p.Conversation(r.Context(), req.UserID, req.PeerID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []models.P2PMessage{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if msgs == nil {
		msgs = []models.P2PMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
