package api

import (
	"net/http"

	"github.com/mindmate/aura-server/internal/store"
)

type serviceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status      string       `json:"status"`
	ChatStore   serviceCheck `json:"chat_store"`
	AI          serviceCheck `json:"ai"`
	MemoryFacts int          `json:"memory_facts"`
}

// Configurable reports whether an optional external dependency is set up.
type Configurable interface {
	Configured() bool
}

// HealthHandler reports which optional dependencies are active. Missing
// dependencies degrade features, never the process, so health is
// informational rather than pass/fail.
type HealthHandler struct {
	memoryDB *store.DB
	messages *store.MessageStore
	ai       Configurable
}

func NewHealthHandler(memoryDB *store.DB, messages *store.MessageStore, ai Configurable) *HealthHandler {
	return &HealthHandler{memoryDB: memoryDB, messages: messages, ai: ai}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}

	if h.messages.Available() {
		resp.ChatStore = serviceCheck{Status: "ok"}
	} else {
		resp.ChatStore = serviceCheck{Status: "unavailable", Message: "CHAT_DB_PATH not set"}
		resp.Status = "degraded"
	}

	if h.ai.Configured() {
		resp.AI = serviceCheck{Status: "ok"}
	} else {
		resp.AI = serviceCheck{Status: "unavailable", Message: "GEMINI_API_KEY not set"}
		resp.Status = "degraded"
	}

	count, err := h.memoryDB.MemoryCount()
	if err != nil {
		resp.Status = "degraded"
	} else {
		resp.MemoryFacts = count
	}

	writeJSON(w, http.StatusOK, resp)
}
