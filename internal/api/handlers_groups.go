package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// GroupHandler serves group creation, listing, and messaging.
type GroupHandler struct {
	groups *store.GroupStore
}

func NewGroupHandler(groups *store.GroupStore) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create handles POST /groups/create.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.CreatedBy == "" {
		writeError(w, http.StatusBadRequest, "name and created_by are required")
		return
	}

	g, err := h.groups.Create(r.Context(), req.Name, req.CreatedBy, req.Members)
	if errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, "database not connected")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, g)
}

// List handles GET /groups/list/{user_id}.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	groups, err := h.groups.ListForUser(r.Context(), userID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []*models.Group{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if groups == nil {
		groups = []*models.Group{}
	}
	writeJSON(w, http.StatusOK, groups)
}

// Messages handles GET /groups/messages/{group_id}.
func (h *GroupHandler) Messages(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "group_id")

	msgs, err := h.groups.Messages(r.Context(), groupID)
	if errors.Is(err, store.ErrUnavailable) {
		writeJSON(w, http.StatusOK, []models.GroupMessage{})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if msgs == nil {
		msgs = []models.GroupMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// Send handles POST /groups/send.
func (h *GroupHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendGroupMessage
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.GroupID == "" || req.SenderID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "group_id, sender_id and message are required")
		return
	}

	member, err := h.groups.IsMember(r.Context(), req.GroupID, req.SenderID)
	if err != nil && !errors.Is(err, store.ErrUnavailable) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err == nil && !member {
		writeError(w, http.StatusForbidden, "sender is not a member of this group")
		return
	}

	m, err := h.groups.Send(r.Context(), req.GroupID, req.SenderID, req.Message)
	switch {
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusInternalServerError, "database not connected")
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "group not found")
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, m)
	}
}
