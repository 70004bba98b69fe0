package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// HistoryTail bounds the number of records served per channel.
	HistoryTail int

	// StarterFriends are seeded as friends of every new identity.
	StarterFriends []string
}

// Load reads configuration from environment variables. In development, it
// loads from a .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		HistoryTail:    getEnvInt("HISTORY_TAIL", 100),
		StarterFriends: []string{"alexa", "blake", "casey"},
	}

	// Comma-separated override for the starter social graph
	if friends := os.Getenv("STARTER_FRIENDS"); friends != "" {
		cfg.StarterFriends = nil
		for _, entry := range strings.Split(friends, ",") {
			entry = strings.TrimSpace(entry)
			if entry != "" {
				cfg.StarterFriends = append(cfg.StarterFriends, entry)
			}
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
