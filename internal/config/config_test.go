package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_NAME", "APP_PORT", "TICKETS_SEED", "REDIS_ADDR", "REDIS_DB", "LOG_LEVEL", "HTTP_REQUEST_TIMEOUT_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Name != "ticket-tracker" {
		t.Errorf("unexpected app name %q", cfg.App.Name)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Errorf("unexpected addr %q", cfg.App.Addr())
	}
	if !cfg.Store.Seed {
		t.Error("seed should default to true")
	}
	if cfg.Redis.Enabled() {
		t.Error("redis relay should be disabled without REDIS_ADDR")
	}
	if cfg.Redis.EventsChannel != "tickets.events" {
		t.Errorf("unexpected channel %q", cfg.Redis.EventsChannel)
	}
	if cfg.App.RequestTimeout() != 30*time.Second {
		t.Errorf("unexpected timeout %v", cfg.App.RequestTimeout())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("TICKETS_SEED", "false")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("unexpected port %q", cfg.App.Port)
	}
	if cfg.Store.Seed {
		t.Error("TICKETS_SEED=false should disable the seed")
	}
	if !cfg.Redis.Enabled() || cfg.Redis.DB != 3 {
		t.Errorf("unexpected redis config %+v", cfg.Redis)
	}
	if cfg.App.RequestTimeout() != 0 {
		t.Errorf("zero seconds should disable the timeout, got %v", cfg.App.RequestTimeout())
	}
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}

func TestGetEnvAsBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TICKETS_SEED", "sometimes")
	if !getEnvAsBool("TICKETS_SEED", true) {
		t.Error("unparseable bool should fall back")
	}
}
