package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/mindmate/aura-server/internal/chat"
	"github.com/mindmate/aura-server/internal/store"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	memoryDB *store.DB,
	chatSvc *chat.Service,
	messages *store.MessageStore,
	users *store.UserStore,
	friends *store.FriendStore,
	groups *store.GroupStore,
	p2p *store.P2PStore,
	ai Configurable,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(memoryDB, messages, ai)
	chatH := NewChatHandler(chatSvc, messages)
	authH := NewAuthHandler(users)
	userH := NewUserHandler(users)
	friendH := NewFriendHandler(friends)
	groupH := NewGroupHandler(groups)
	p2pH := NewP2PHandler(p2p)
	emotionH := NewEmotionHandler()

	r.Get("/health", healthH.Health)

	// Conversation
	r.Post("/chat", chatH.Chat)
	// GET takes a user id, DELETE takes a session id; chi requires the
	// same param name at a shared path segment.
	r.Get("/sessions/{id}", chatH.Sessions)
	r.Delete("/sessions/{id}", chatH.DeleteSession)
	r.Get("/history/{session_id}", chatH.History)

	// Auth
	r.Post("/signup", authH.Signup)
	r.Post("/login", authH.Login)
	r.Post("/reset-password", authH.ResetPassword)

	// Profiles
	r.Get("/users/{user_id}", userH.Get)
	r.Put("/users/update", userH.Update)
	r.Post("/users/search", userH.Search)

	// Friend graph
	r.Route("/friend-request", func(r chi.Router) {
		r.Post("/send", friendH.Send)
		r.Post("/respond", friendH.Respond)
		r.Get("/pending/{user_id}", friendH.Pending)
	})
	r.Get("/friends/list/{user_id}", friendH.List)

	// Groups
	r.Route("/groups", func(r chi.Router) {
		r.Post("/create", groupH.Create)
		r.Get("/list/{user_id}", groupH.List)
		r.Get("/messages/{group_id}", groupH.Messages)
		r.Post("/send", groupH.Send)
	})

	// Direct messages
	r.Route("/p2p", func(r chi.Router) {
		r.Post("/send", p2pH.Send)
		r.Post("/messages", p2pH.Messages)
	})

	// Emotion stub
	r.Post("/detect_emotion", emotionH.Detect)

	return r
}
