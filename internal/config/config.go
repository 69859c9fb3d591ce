// Package config loads server configuration from a .env file and the
// environment. Environment variables always win over .env values.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Auth strategy names accepted in MEMBO_AUTH_STRATEGY.
const (
	AuthCredential = "credential"
	AuthMock       = "mock"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr        string
	Environment string // development | production
	DBPath      string

	AuthStrategy string
	TokenSecret  string
	TokenTTL     time.Duration

	AdminEmail    string
	AdminPassword string

	ClubName string

	ResendKey  string
	EmailFrom  string
	EmailReply string

	RateLimitPerSecond int
}

// Load reads .env (if present) and the environment.
// POST: Returns a validated Config or an error for missing required values
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		Addr:          envOrDefault("MEMBO_ADDR", ":8080"),
		Environment:   envOrDefault("MEMBO_ENV", "development"),
		DBPath:        envOrDefault("MEMBO_DB_PATH", "membo.db"),
		AuthStrategy:  envOrDefault("MEMBO_AUTH_STRATEGY", AuthCredential),
		TokenSecret:   os.Getenv("MEMBO_TOKEN_SECRET"),
		AdminEmail:    envOrDefault("MEMBO_ADMIN_EMAIL", "admin@membo.com"),
		AdminPassword: envOrDefault("MEMBO_ADMIN_PASSWORD", "admin123"),
		ClubName:      envOrDefault("MEMBO_CLUB_NAME", "Membo Martial Arts"),
		ResendKey:     os.Getenv("MEMBO_RESEND_KEY"),
		EmailFrom:     envOrDefault("MEMBO_RESEND_FROM", "Membo <noreply@membo.com>"),
		EmailReply:    envOrDefault("MEMBO_REPLY_TO", "info@membo.com"),
	}

	cfg.TokenTTL = 24 * time.Hour
	if v := os.Getenv("MEMBO_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MEMBO_TOKEN_TTL %q: %w", v, err)
		}
		cfg.TokenTTL = ttl
	}

	cfg.RateLimitPerSecond = 10
	if v := os.Getenv("MEMBO_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid MEMBO_RATE_LIMIT %q", v)
		}
		cfg.RateLimitPerSecond = n
	}

	if cfg.AuthStrategy != AuthCredential && cfg.AuthStrategy != AuthMock {
		return nil, fmt.Errorf("MEMBO_AUTH_STRATEGY must be %q or %q", AuthCredential, AuthMock)
	}

	if cfg.TokenSecret == "" {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("MEMBO_TOKEN_SECRET is required in production")
		}
		// Development fallback: tokens won't survive a restart anyway.
		cfg.TokenSecret = "membo-dev-secret"
		log.Println("WARNING: using development token secret. Set MEMBO_TOKEN_SECRET for production.")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
