package config

import (
	"slices"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DB_TYPE", "GAME_DURATION_SECONDS", "GEMINI_MODEL", "RABBITMQ_HOST", "ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Server.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %v, want %v", cfg.Server.HTTPPort, "8080")
	}
	if cfg.DB.Type != "postgres" {
		t.Errorf("DB.Type = %v, want %v", cfg.DB.Type, "postgres")
	}
	if cfg.Game.DurationSeconds != 1800 {
		t.Errorf("DurationSeconds = %v, want %v", cfg.Game.DurationSeconds, 1800)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("Gemini.Model = %v, want %v", cfg.Gemini.Model, "gemini-2.0-flash")
	}
	if cfg.RabbitMQ.Enabled() {
		t.Error("RabbitMQ.Enabled() = true without a host")
	}
	if cfg.Server.AllowedOrigins != nil {
		t.Errorf("AllowedOrigins = %v, want nil", cfg.Server.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_TYPE", "sqlite")
	t.Setenv("GAME_DURATION_SECONDS", "60")
	t.Setenv("GAME_INCORRECT_DELAY", "500ms")
	t.Setenv("DB_SEED", "false")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg := Load()
	if cfg.DB.Type != "sqlite" || cfg.DB.Seed {
		t.Errorf("DB = %+v, want sqlite without seed", cfg.DB)
	}
	if cfg.Game.DurationSeconds != 60 {
		t.Errorf("DurationSeconds = %v, want %v", cfg.Game.DurationSeconds, 60)
	}
	if cfg.Game.IncorrectDelay != 500*time.Millisecond {
		t.Errorf("IncorrectDelay = %v, want %v", cfg.Game.IncorrectDelay, 500*time.Millisecond)
	}
	if want := []string{"http://a.test", "http://b.test"}; !slices.Equal(cfg.Server.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	if cfg.Redis.DB != 0 {
		t.Errorf("Redis.DB = %v, want fallback %v", cfg.Redis.DB, 0)
	}
}
