// Package config handles configuration loading from the environment and an
// optional .env file. It provides a centralized Config struct shared by the
// agencyctl command and the blog API server.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingToken is returned when STRAPI_API_TOKEN is not set.
var ErrMissingToken = errors.New("STRAPI_API_TOKEN is not set")

// Config holds all configuration values loaded from the environment.
type Config struct {
	// Server settings (blog API only)
	Host string
	Port string
	Env  string // "development", "production", "testing"

	LogLevel string

	// RateLimit is the number of API requests allowed per client IP per
	// minute. 0 disables limiting.
	RateLimit int

	// Strapi CMS
	StrapiURL   string
	StrapiToken string
	HTTPTimeout time.Duration // 0 means no client timeout

	// Valkey (Redis-compatible cache). Empty host disables caching.
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	CacheTTL       time.Duration
}

// Load reads a .env file from the working directory if one exists, then
// reads configuration from environment variables, applying defaults where
// appropriate. Variables already present in the environment win over .env.
// Returns ErrMissingToken if the CMS token is absent.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		LogLevel: strings.ToLower(envOrDefault("LOG_LEVEL", "info")),

		StrapiURL:   strings.TrimRight(envOrDefault("STRAPI_API_URL", "http://localhost:1337"), "/"),
		StrapiToken: strings.TrimSpace(os.Getenv("STRAPI_API_TOKEN")),

		ValkeyHost:     os.Getenv("VALKEY_HOST"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
	}

	var err error
	if cfg.HTTPTimeout, err = durationOrDefault("HTTP_TIMEOUT", 0); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationOrDefault("CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = intOrDefault("RATE_LIMIT", 120); err != nil {
		return nil, err
	}

	if cfg.StrapiToken == "" {
		return nil, ErrMissingToken
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Valkey host has been configured.
func (c *Config) CacheEnabled() bool {
	return c.ValkeyHost != ""
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values mean info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func intOrDefault(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("config: invalid %s %q: must be a non-negative integer", key, v)
	}
	return n, nil
}
