// Package chat implements the persona-and-memory-augmented conversation
// flow: extract facts from the incoming message, build a persona from the
// memory snapshot, replay history, call the model, persist both sides.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mindmate/aura-server/internal/genai"
	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// ErrEmptyMessage is returned when the request carries no message text.
var ErrEmptyMessage = errors.New("chat: message is required")

// visualMarker flags a message that already carries a visual-context
// annotation so it is never annotated twice.
const visualMarker = "[User appears"

// defaultUserID keeps anonymous clients working; the mobile app always
// sends a real id after login.
const defaultUserID = "user_1"

// Generator produces a model reply from a system instruction, prior
// turns, and one new message.
type Generator interface {
	Generate(ctx context.Context, system string, history []genai.Turn, message string) (string, error)
}

// Service orchestrates one chat exchange. Stateless across requests; all
// state lives in the stores.
type Service struct {
	memory      *store.MemoryStore
	messages    *store.MessageStore
	ai          Generator
	extractor   *Extractor
	memoryLimit int
	logger      *slog.Logger
}

func NewService(
	memory *store.MemoryStore,
	messages *store.MessageStore,
	ai Generator,
	extractor *Extractor,
	memoryLimit int,
	logger *slog.Logger,
) *Service {
	return &Service{
		memory:      memory,
		messages:    messages,
		ai:          ai,
		extractor:   extractor,
		memoryLimit: memoryLimit,
		logger:      logger,
	}
}

// Exchange runs one full conversation turn and returns the reply plus the
// session id (caller-supplied or freshly minted).
//
// The inbound message is persisted before the model call and stays
// persisted even when the call fails; the two writes are independent,
// there is no compensating delete.
func (s *Service) Exchange(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	userID := req.UserID
	if userID == "" {
		userID = defaultUserID
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	// Best-effort persist of the user's side. A missing chat store is not
	// fatal to the conversation.
	if err := s.messages.Insert(ctx, userID, sessionID, models.SenderUser, req.Message); err != nil {
		if !errors.Is(err, store.ErrUnavailable) {
			return nil, fmt.Errorf("persist user message: %w", err)
		}
		s.logger.Debug("chat store unavailable, skipping user message persist", "session_id", sessionID)
	}

	if err := s.extractor.Extract(ctx, userID, req.Message); err != nil {
		return nil, fmt.Errorf("extract memory: %w", err)
	}

	facts, err := s.memory.Get(ctx, userID, s.memoryLimit)
	if err != nil {
		return nil, fmt.Errorf("load memory: %w", err)
	}

	persona := ComposePersona(facts, req.Emotion)

	turns, err := LoadHistory(ctx, s.messages, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	history := make([]genai.Turn, len(turns))
	for i, t := range turns {
		history[i] = genai.Turn{Role: string(t.Role), Text: t.Content}
	}

	outbound := s.annotate(req.Message, req.Emotion)

	reply, err := s.ai.Generate(ctx, persona, history, outbound)
	if err != nil {
		return nil, fmt.Errorf("generate reply: %w", err)
	}

	if err := s.messages.Insert(ctx, userID, sessionID, models.SenderAI, reply); err != nil {
		if !errors.Is(err, store.ErrUnavailable) {
			return nil, fmt.Errorf("persist ai reply: %w", err)
		}
		s.logger.Debug("chat store unavailable, skipping reply persist", "session_id", sessionID)
	}

	return &models.ChatResponse{Reply: reply, SessionID: sessionID}, nil
}

// annotate prepends a bracketed visual-context hint for the model when a
// non-neutral emotion accompanies the message and the text is not already
// annotated. The stored message stays raw; only the outbound copy changes.
func (s *Service) annotate(message, emotion string) string {
	if emotion == "" || emotion == "neutral" {
		return message
	}
	if strings.Contains(message, visualMarker) {
		return message
	}
	return fmt.Sprintf("%s %s based on visual analysis] %s", visualMarker, emotion, message)
}
