package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// FriendHandler serves the friend graph: requests and listings.
type FriendHandler struct {
	friends *store.FriendStore
}

func NewFriendHandler(friends *store.FriendStore) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// Send handles POST /friend-request/send.
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.FromUser == "" || req.ToUser == "" {
		writeError(w, http.StatusBadRequest, "from_user and to_user are required")
		return
	}
	if req.FromUser == req.ToUser {
		writeError(w, http.StatusBadRequest, "cannot friend yourself")
		return
	}

	fr, err := h.friends.SendRequest(r.Context(), req.FromUser, req.ToUser)
	switch {
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "database not connected")
	case errors.Is(err, store.ErrDuplicateRequest):
		writeError(w, http.StatusBadRequest, "request already exists or users are already friends")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, fr)
	}
}

// Respond handles POST /friend-request/respond.
func (h *FriendHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req models.RespondFriendRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.RequestID == "" {
		writeError(w, http.StatusBadRequest, "request_id is required")
		return
	}

	err := h.friends.Respond(r.Context(), req.RequestID, req.Accept)
	switch {
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "database not connected")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "pending request not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// Pending handles GET /friend-request/pending/{user_id}.
func (h *FriendHandler) Pending(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	pending, err := h.friends.Pending(r.Context(), userID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []*models.PendingRequest{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if pending == nil {
		pending = []*models.PendingRequest{}
	}
	writeJSON(w, http.StatusOK, pending)
}

// List handles GET /friends/list/{user_id}.
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	friends, err := h.friends.Friends(r.Context(), userID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []*models.Profile{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if friends == nil {
		friends = []*models.Profile{}
	}
	writeJSON(w, http.StatusOK, friends)
}
