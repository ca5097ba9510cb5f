package authcore

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTokenHeader is the request header the dispatch layer reads the
// session token from.
const DefaultTokenHeader = "TOKEN"

// Config holds service configuration. Instances are set up once before
// [Builder.Build] and treated as immutable afterwards.
type Config struct {
	// SessionTTL is the fixed lifetime of every session from issuance.
	// Expiry is always creation time plus this value.
	SessionTTL time.Duration

	// MaxTokenAttempts bounds the collision-retry loop when minting
	// tokens.
	MaxTokenAttempts int

	// TokenHeader names the request header carrying the session token.
	TokenHeader string

	// SweepSchedule is the cron expression driving the expired-session
	// janitor, when the embedder starts one.
	SweepSchedule string
}

// DefaultConfig returns the default policy: 1 hour sessions, 16
// generation attempts, the TOKEN header, and a sweep every minute.
func DefaultConfig() Config {
	return Config{
		SessionTTL:       time.Hour,
		MaxTokenAttempts: 16,
		TokenHeader:      DefaultTokenHeader,
		SweepSchedule:    "@every 1m",
	}
}

// Validate checks the configuration for values the service cannot run
// with.
func (c *Config) Validate() error {
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.MaxTokenAttempts <= 0 {
		return errors.New("max token attempts must be positive")
	}
	if c.TokenHeader == "" {
		return errors.New("token header must not be empty")
	}
	return nil
}

type fileConfig struct {
	SessionTTL       string `yaml:"session_ttl"`
	MaxTokenAttempts int    `yaml:"max_token_attempts"`
	TokenHeader      string `yaml:"token_header"`
	SweepSchedule    string `yaml:"sweep_schedule"`
}

// LoadConfig reads a YAML configuration file and merges it over
// [DefaultConfig]. Absent keys keep their defaults; session_ttl accepts
// Go duration syntax ("1h", "90m").
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.SessionTTL != "" {
		ttl, err := time.ParseDuration(fc.SessionTTL)
		if err != nil {
			return cfg, fmt.Errorf("parse session_ttl: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	if fc.MaxTokenAttempts != 0 {
		cfg.MaxTokenAttempts = fc.MaxTokenAttempts
	}
	if fc.TokenHeader != "" {
		cfg.TokenHeader = fc.TokenHeader
	}
	if fc.SweepSchedule != "" {
		cfg.SweepSchedule = fc.SweepSchedule
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
