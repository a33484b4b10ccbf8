package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindmate/aura-server/internal/api"
	"github.com/mindmate/aura-server/internal/chat"
	"github.com/mindmate/aura-server/internal/config"
	"github.com/mindmate/aura-server/internal/genai"
	"github.com/mindmate/aura-server/internal/store"
)

func main() {
	// Logger
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// AI memory database (always on)
	memoryDB, err := store.OpenMemoryDB(cfg.MemoryDBPath)
	if err != nil {
		logger.Error("failed to open memory database", "error", err)
		os.Exit(1)
	}
	defer memoryDB.Close()

	// Chat/user database (optional; routes degrade without it)
	var chatDB *store.DB
	if cfg.ChatDBPath != "" {
		chatDB, err = store.OpenChatDB(cfg.ChatDBPath)
		if err != nil {
			logger.Error("failed to open chat database", "error", err)
			os.Exit(1)
		}
		defer chatDB.Close()
	} else {
		logger.Warn("CHAT_DB_PATH not set, chat history and accounts disabled")
	}

	// Stores
	memoryStore := store.NewMemoryStore(memoryDB)
	messageStore := store.NewMessageStore(chatDB)
	userStore := store.NewUserStore(chatDB)
	friendStore := store.NewFriendStore(chatDB)
	groupStore := store.NewGroupStore(chatDB)
	p2pStore := store.NewP2PStore(chatDB)

	// Gemini
	aiClient := genai.New(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel)
	if !aiClient.Configured() {
		logger.Warn("GEMINI_API_KEY not set, AI replies disabled")
	}

	// Memory extraction rules
	rules, err := chat.LoadRules(cfg.PersonaRulesPath)
	if err != nil {
		logger.Error("failed to load persona rules", "error", err)
		os.Exit(1)
	}
	extractor := chat.NewExtractor(rules, memoryStore)

	// Conversation service
	chatSvc := chat.NewService(memoryStore, messageStore, aiClient, extractor, cfg.MemoryLimit, logger)

	// Router
	router := api.NewRouter(memoryDB, chatSvc, messageStore, userStore, friendStore, groupStore, p2pStore, aiClient, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // AI generation can be slow
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("aura server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
