package models

// Sender identifies which side of an exchange wrote a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatMessage is one stored turn of an AI conversation. Messages are
// append-only; a session is just the set of messages sharing a SessionID.
type ChatMessage struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Sender    Sender `json:"sender"`
	Message   string `json:"message"`
	// Timestamp is unix milliseconds; ordering key within a session.
	Timestamp int64 `json:"timestamp"`
}

// MemoryFact is one persisted key/value the assistant knows about a user.
// At most one fact exists per (user_id, key); re-mention overwrites.
type MemoryFact struct {
	UserID     string `json:"user_id"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	Importance int    `json:"importance"`
	UpdatedAt  int64  `json:"updated_at"`
}

// Role is the transcript role the AI API expects.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// HistoryTurn is one prior turn in the transcript format sent upstream.
type HistoryTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	// Emotion is an out-of-band hint from the detection stub:
	// happy, sad, or neutral. Empty means no hint.
	Emotion string `json:"emotion,omitempty"`
}

// ChatResponse is the reply for POST /chat.
type ChatResponse struct {
	Reply     string `json:"reply"`
	SessionID string `json:"session_id"`
}

// SessionSummary is one row of GET /sessions/{user_id}: the newest message
// of a session, truncated for list display.
type SessionSummary struct {
	SessionID string `json:"session_id"`
	Preview   string `json:"preview"`
	Timestamp int64  `json:"timestamp"`
}

// EmotionResult is the response of POST /detect_emotion.
type EmotionResult struct {
	TopEmotion string  `json:"top_emotion"`
	Confidence float64 `json:"confidence"`
}
