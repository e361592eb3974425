// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs to start.
type Config struct {
	// Port the HTTP server listens on.
	Port int

	// DBPath is the SQLite database file location.
	DBPath string

	// RecognizerURL is the recognition service endpoint that receives
	// uploaded images.
	RecognizerURL string

	// RecognizerTimeout bounds one recognition call.
	RecognizerTimeout time.Duration

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// TokenTTL is how long issued tokens remain valid.
	TokenTTL time.Duration
}

// Load reads configuration from .env (when present) and the environment.
// Every setting except JWT_SECRET has a development default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	recognizerTimeout, err := time.ParseDuration(getEnv("RECOGNIZER_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOGNIZER_TIMEOUT: %w", err)
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Port:              port,
		DBPath:            getEnv("DB_PATH", "./data/snapledger.db"),
		RecognizerURL:     getEnv("RECOGNIZER_URL", "http://localhost:5000/process-receipt"),
		RecognizerTimeout: recognizerTimeout,
		JWTSecret:         secret,
		TokenTTL:          tokenTTL,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
