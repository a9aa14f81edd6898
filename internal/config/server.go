package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guillermoBallester/clerksync/internal/core/domain"
)

// ServerConfig holds configuration for the webhook server.
type ServerConfig struct {
	ListenAddr        string
	DatabaseURL       string
	WebhookSecret     string
	ClerkSecretKey    string // empty disables the route gate and /api/me
	CORSOrigin        string
	LogLevel          slog.Level
	WebhookRateLimit  float64 // requests per minute per client IP
	ReadHeaderTimeout time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// LoadServer loads server configuration from environment variables.
// A missing WEBHOOK_SECRET or DATABASE_URL is a KindConfiguration error.
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{
		ListenAddr:     ":8080",
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		ClerkSecretKey: os.Getenv("CLERK_SECRET_KEY"),
		CORSOrigin:     os.Getenv("CORS_ORIGIN"),
		LogLevel:       slog.LevelInfo,
	}

	if cfg.WebhookSecret == "" {
		return nil, domain.NewError(domain.KindConfiguration,
			fmt.Errorf("WEBHOOK_SECRET environment variable is required"))
	}
	if cfg.DatabaseURL == "" {
		return nil, domain.NewError(domain.KindConfiguration,
			fmt.Errorf("DATABASE_URL environment variable is required"))
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	var err error
	if cfg.WebhookRateLimit, err = positiveFloatEnv("WEBHOOK_RATE_LIMIT", 600); err != nil {
		return nil, err
	}
	if cfg.ReadHeaderTimeout, err = durationEnv("READ_HEADER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdleTimeout, err = durationEnv("IDLE_TIMEOUT", 120*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RouteGateEnabled reports whether Clerk session gating is configured.
func (c *ServerConfig) RouteGateEnabled() bool {
	return c.ClerkSecretKey != ""
}
