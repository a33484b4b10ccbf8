package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port         int
	MemoryDBPath string
	// ChatDBPath is optional. When empty the chat/user store never opens
	// and every route that needs it degrades per its contract.
	ChatDBPath string
	LogLevel   string

	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiModel   string

	// PersonaRulesPath optionally points at a YAML file with extra
	// memory-extraction rules. Built-in rules always apply.
	PersonaRulesPath string

	// MemoryLimit is how many facts the persona sees per exchange.
	MemoryLimit int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:             envInt("PORT", 8600),
		MemoryDBPath:     envStr("MEMORY_DB_PATH", "aura_memory.db"),
		ChatDBPath:       envStr("CHAT_DB_PATH", ""),
		LogLevel:         envStr("LOG_LEVEL", "info"),
		GeminiAPIKey:     envStr("GEMINI_API_KEY", ""),
		GeminiBaseURL:    envStr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiModel:      envStr("GEMINI_MODEL", "gemini-2.5-flash"),
		PersonaRulesPath: envStr("PERSONA_RULES_PATH", ""),
		MemoryLimit:      envInt("MEMORY_LIMIT", 5),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.MemoryDBPath == "" {
		return fmt.Errorf("MEMORY_DB_PATH must not be empty")
	}
	if c.GeminiBaseURL == "" {
		return fmt.Errorf("GEMINI_BASE_URL must not be empty")
	}
	if c.MemoryLimit < 1 {
		return fmt.Errorf("MEMORY_LIMIT must be positive, got %d", c.MemoryLimit)
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
