// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Credential endpoint
	Credential CredentialConfig

	// Record channel
	Channel ChannelConfig

	// Session persistence
	Session SessionConfig

	// Payment simulation
	Payment PaymentConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration
}

// CredentialConfig holds credential HTTP endpoint settings.
type CredentialConfig struct {
	// BaseURL of the credential endpoint
	BaseURL string

	// Request timeout
	Timeout time.Duration
}

// ChannelConfig holds record channel settings.
type ChannelConfig struct {
	// URL of the channel endpoint (ws:// or wss://)
	URL string

	// Handshake timeout for each scoped connection
	HandshakeTimeout time.Duration
}

// SessionConfig holds session persistence settings.
type SessionConfig struct {
	// Path of the session file
	Path string
}

// PaymentConfig holds payment simulation settings.
type PaymentConfig struct {
	// ProcessingDelay before the fee-status update is sent
	ProcessingDelay time.Duration
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "student-fee-portal"),
			Environment:     Environment(getEnv("APP_ENV", string(EnvDevelopment))),
			Debug:           getEnvBool("APP_DEBUG", false),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Credential: CredentialConfig{
			BaseURL: getEnv("CREDENTIAL_URL", "http://localhost:5000"),
			Timeout: getEnvDuration("CREDENTIAL_TIMEOUT", 15*time.Second),
		},
		Channel: ChannelConfig{
			URL:              getEnv("CHANNEL_URL", "ws://localhost:5000/channel"),
			HandshakeTimeout: getEnvDuration("CHANNEL_HANDSHAKE_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			Path: getEnv("SESSION_PATH", defaultSessionPath()),
		},
		Payment: PaymentConfig{
			ProcessingDelay: getEnvDuration("PAYMENT_PROCESSING_DELAY", 2*time.Second),
		},
	}

	if cfg.Credential.BaseURL == "" {
		return nil, errors.New("CREDENTIAL_URL is required")
	}
	if cfg.Channel.URL == "" {
		return nil, errors.New("CHANNEL_URL is required")
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".feeportal", "session.json")
}

// ─────────────────────────────────────────────────────────────────────────────
// ENV HELPERS
// ─────────────────────────────────────────────────────────────────────────────

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
