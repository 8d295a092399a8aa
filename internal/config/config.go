// Package config loads the session service settings from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. BILLING_ADDR.
const Prefix = "BILLING"

// Config holds runtime configuration for the session service.
type Config struct {
	Env             string        `envconfig:"ENV" default:"development"`
	Addr            string        `envconfig:"ADDR" default:":8080"`
	SessionSecret   string        `envconfig:"SESSION_SECRET"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"120"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1m"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.SessionSecret == "" {
		return errors.New("session secret must be provided (BILLING_SESSION_SECRET)")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.RateLimit <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.CleanupInterval <= 0 {
		return errors.New("cleanup interval must be positive")
	}
	return nil
}

// IsProduction returns true when the service runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.Env == "production"
}
