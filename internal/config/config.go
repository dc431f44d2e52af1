package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"chatrelay/internal/llm"
)

// Config holds all configuration for the application.
type Config struct {
	Host            string
	Port            string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	LogLevel        slog.Level
	LogFormat       string
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Host:        getEnv("HOST", "0.0.0.0"),
		Port:        getEnv("PORT", "3001"),
		UpstreamURL: getEnv("ANTHROPIC_API_URL", llm.DefaultURL),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("PORT must be a valid integer: %w", err)
	}
	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	// Zero keeps the upstream call unbounded
	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must be a valid duration: %w", err)
	}
	if timeout < 0 {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}
	cfg.UpstreamTimeout = timeout

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// loadDotEnv loads the nearest .env file, walking up from the working directory.
// A missing file is not an error.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
