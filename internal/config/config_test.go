package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	os.Setenv(key, value)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	})
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	setEnv(t, "DATABASE_URL", "")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error when DATABASE_URL is empty")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnv(t, "DATABASE_URL", "postgres://localhost/asthmaguard_test")
	setEnv(t, "ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %s", cfg.Port)
	}
	if cfg.SessionTTLMins != 720 {
		t.Errorf("expected default session TTL 720, got %d", cfg.SessionTTLMins)
	}
	if cfg.GeoIPURL == "" {
		t.Error("expected a default GEOIP_URL")
	}
	if !cfg.IsDev() {
		t.Error("expected IsDev() with ENV=development")
	}
	// Dev mode substitutes an insecure secret rather than failing.
	if cfg.SessionSecret == "" {
		t.Error("expected a development fallback session secret")
	}
}

func TestValidate_ProductionRejectsDevSecret(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		SessionSecret:  "dev-insecure-session-secret",
		SessionTTLMins: 720,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for dev secret in production")
	}
	if !strings.Contains(err.Error(), "SESSION_SECRET") {
		t.Errorf("expected SESSION_SECRET in error, got: %v", err)
	}
}

func TestValidate_ProductionRejectsShortSecret(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		SessionSecret:  "short",
		SessionTTLMins: 720,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short secret in production")
	}
}

func TestValidate_AcceptsProductionConfig(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		SessionSecret:  strings.Repeat("s", 48),
		SessionTTLMins: 60,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsNonPositiveTTL(t *testing.T) {
	cfg := &Config{
		Env:            "development",
		SessionSecret:  "dev-insecure-session-secret",
		SessionTTLMins: 0,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero session TTL")
	}
}
