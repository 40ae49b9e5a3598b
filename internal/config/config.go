package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Provider  ProviderConfig
	Aggregate AggregateConfig
}

// ProviderConfig contains upstream supplier gateway parameters. All providers
// live behind one gateway base URL and share the retry policy.
type ProviderConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// AggregateConfig bounds one catalog or detail request as a whole. Providers
// still pending at the deadline are treated as failed.
type AggregateConfig struct {
	Timeout time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// Upstream providers
	cfg.Provider.BaseURL = getEnv("PROVIDER_BASE_URL", "https://web-production-84144.up.railway.app")
	cfg.Provider.MaxRetries = getEnvInt("PROVIDER_MAX_RETRIES", 5)

	var err error
	if cfg.Provider.Timeout, err = parseDurationEnv("PROVIDER_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}
	if cfg.Provider.RetryDelay, err = parseDurationEnv("PROVIDER_RETRY_DELAY", "1s"); err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_RETRY_DELAY: %w", err)
	}
	if cfg.Aggregate.Timeout, err = parseDurationEnv("AGGREGATE_TIMEOUT", "60s"); err != nil {
		return nil, fmt.Errorf("invalid AGGREGATE_TIMEOUT: %w", err)
	}

	if cfg.Provider.BaseURL == "" {
		return nil, errors.New("provider configuration incomplete: ensure PROVIDER_BASE_URL is set")
	}
	if cfg.Provider.MaxRetries < 1 {
		return nil, errors.New("PROVIDER_MAX_RETRIES must be >= 1")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a
// default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as
// time.Duration. If the variable is empty, it falls back to the provided
// default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
