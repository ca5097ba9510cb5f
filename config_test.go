package authcore

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.SessionTTL != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", cfg.SessionTTL)
	}
	if cfg.TokenHeader != "TOKEN" {
		t.Fatalf("expected TOKEN header, got %q", cfg.TokenHeader)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero ttl", func(c *Config) { c.SessionTTL = 0 }},
		{"negative ttl", func(c *Config) { c.SessionTTL = -time.Minute }},
		{"zero attempts", func(c *Config) { c.MaxTokenAttempts = 0 }},
		{"empty header", func(c *Config) { c.TokenHeader = "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "authcore.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := writeConfigFile(t, "session_ttl: 90m\ntoken_header: X-SESSION\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.SessionTTL != 90*time.Minute {
		t.Fatalf("expected 90m TTL, got %v", cfg.SessionTTL)
	}
	if cfg.TokenHeader != "X-SESSION" {
		t.Fatalf("expected X-SESSION header, got %q", cfg.TokenHeader)
	}
	// Untouched keys keep their defaults.
	if cfg.MaxTokenAttempts != 16 {
		t.Fatalf("expected default attempts, got %d", cfg.MaxTokenAttempts)
	}
	if cfg.SweepSchedule != "@every 1m" {
		t.Fatalf("expected default sweep schedule, got %q", cfg.SweepSchedule)
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := writeConfigFile(t, "session_ttl: tomorrow\n")

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
