package chat

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mindmate/aura-server/internal/genai"
	"github.com/mindmate/aura-server/internal/models"
	"github.com/mindmate/aura-server/internal/store"
)

// fakeGenerator records what the orchestrator sends upstream.
type fakeGenerator struct {
	reply   string
	err     error
	system  string
	history []genai.Turn
	message string
	calls   int
}

func (f *fakeGenerator) Generate(_ context.Context, system string, history []genai.Turn, message string) (string, error) {
	f.calls++
	f.system = system
	f.history = history
	f.message = message
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestService(t *testing.T, gen Generator, withChatStore bool) (*Service, *store.MemoryStore, *store.MessageStore) {
	t.Helper()

	memDB, err := store.OpenMemoryDB(filepath.Join(t.TempDir(), "memory.db"))
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() { memDB.Close() })
	memoryStore := store.NewMemoryStore(memDB)

	var chatDB *store.DB
	if withChatStore {
		chatDB, err = store.OpenChatDB(filepath.Join(t.TempDir(), "chat.db"))
		if err != nil {
			t.Fatalf("open chat db: %v", err)
		}
		t.Cleanup(func() { chatDB.Close() })
	}
	messageStore := store.NewMessageStore(chatDB)

	extractor := NewExtractor(DefaultRules(), memoryStore)
	svc := NewService(memoryStore, messageStore, gen, extractor, 5, slog.Default())
	return svc, memoryStore, messageStore
}

func TestExchangePersistsBothSides(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{reply: "I hear you."}
	svc, _, messages := newTestService(t, gen, true)

	resp, err := svc.Exchange(ctx, &models.ChatRequest{Message: "hello", UserID: "u1", SessionID: "s1"})
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if resp.Reply != "I hear you." {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
	if resp.SessionID != "s1" {
		t.Fatalf("caller-supplied session id must round-trip, got %q", resp.SessionID)
	}

	msgs, err := messages.History(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected both sides persisted, got %d messages", len(msgs))
	}
	if msgs[0].Sender != models.SenderUser || msgs[1].Sender != models.SenderAI {
		t.Fatalf("unexpected senders: %s, %s", msgs[0].Sender, msgs[1].Sender)
	}
}

func TestExchangeMintsSessionID(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc, _, _ := newTestService(t, gen, true)

	resp, err := svc.Exchange(context.Background(), &models.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if resp.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
}

func TestExchangeEmptyMessage(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc, _, messages := newTestService(t, gen, true)

	_, err := svc.Exchange(context.Background(), &models.ChatRequest{Message: "   "})
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatal("upstream must not be called for an empty message")
	}

	sessions, err := messages.Sessions(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatal("no writes may happen for an empty message")
	}
}

func TestExchangeWithoutChatStore(t *testing.T) {
	gen := &fakeGenerator{reply: "still here for you"}
	svc, _, _ := newTestService(t, gen, false)

	resp, err := svc.Exchange(context.Background(), &models.ChatRequest{Message: "hello", UserID: "u1"})
	if err != nil {
		t.Fatalf("conversation must tolerate a missing chat store, got %v", err)
	}
	if resp.Reply != "still here for you" {
		t.Fatalf("unexpected reply %q", resp.Reply)
	}
}

func TestExchangeFeedsMemoryIntoPersona(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{reply: "nice to meet you"}
	svc, _, _ := newTestService(t, gen, true)

	if _, err := svc.Exchange(ctx, &models.ChatRequest{Message: "My name is Asha", UserID: "u1"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	// The fact extracted from this very message is already in the persona.
	if !strings.Contains(gen.system, "- name: Asha") {
		t.Fatalf("persona should carry the extracted name, got:\n%s", gen.system)
	}
}

func TestExchangeSendsHistory(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{reply: "reply"}
	svc, _, _ := newTestService(t, gen, true)

	if _, err := svc.Exchange(ctx, &models.ChatRequest{Message: "first", UserID: "u1", SessionID: "s1"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if _, err := svc.Exchange(ctx, &models.ChatRequest{Message: "second", UserID: "u1", SessionID: "s1"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}

	// Second call sees the first exchange plus its own just-persisted
	// message in the prior turns.
	if len(gen.history) != 3 {
		t.Fatalf("expected 3 prior turns, got %d", len(gen.history))
	}
	if gen.history[0].Role != "user" || gen.history[1].Role != "model" {
		t.Fatalf("unexpected roles: %+v", gen.history)
	}
}

func TestExchangeAnnotatesEmotion(t *testing.T) {
	gen := &fakeGenerator{reply: "ok"}
	svc, _, _ := newTestService(t, gen, true)

	if _, err := svc.Exchange(context.Background(), &models.ChatRequest{Message: "hi", Emotion: "sad"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if !strings.HasPrefix(gen.message, "[User appears sad") {
		t.Fatalf("expected visual annotation, got %q", gen.message)
	}

	// Already-annotated messages are not annotated twice.
	gen2 := &fakeGenerator{reply: "ok"}
	svc2, _, _ := newTestService(t, gen2, true)
	annotated := "[User appears sad based on visual analysis] hi"
	if _, err := svc2.Exchange(context.Background(), &models.ChatRequest{Message: annotated, Emotion: "sad"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if gen2.message != annotated {
		t.Fatalf("message must not be annotated twice, got %q", gen2.message)
	}

	// Neutral hints leave the message alone.
	gen3 := &fakeGenerator{reply: "ok"}
	svc3, _, _ := newTestService(t, gen3, true)
	if _, err := svc3.Exchange(context.Background(), &models.ChatRequest{Message: "hi", Emotion: "neutral"}); err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if gen3.message != "hi" {
		t.Fatalf("neutral emotion must not annotate, got %q", gen3.message)
	}
}

func TestExchangeUpstreamFailureKeepsUserMessage(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	svc, _, messages := newTestService(t, gen, true)

	_, err := svc.Exchange(ctx, &models.ChatRequest{Message: "hello", UserID: "u1", SessionID: "s1"})
	if err == nil {
		t.Fatal("expected upstream failure to propagate")
	}

	// The inbound message stays persisted; there is no rollback.
	msgs, err := messages.History(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != models.SenderUser {
		t.Fatalf("expected only the user message persisted, got %+v", msgs)
	}
}
