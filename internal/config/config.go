package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDatabaseURL is the roster file opened when DATABASE_URL is unset.
const DefaultDatabaseURL = "StudentMis.db"

// Config holds all application configuration.
type Config struct {
	// DatabaseURL is either a SQLite file path (optionally prefixed with
	// "file:" or "sqlite://") or a postgres:// connection URL.
	DatabaseURL string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", DefaultDatabaseURL),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "pretty")),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
