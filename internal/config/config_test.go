package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SlotDurationMinutes != 30 {
		t.Errorf("expected default slot duration 30, got %d", cfg.SlotDurationMinutes)
	}
	if cfg.TranscriptionJobsTable != "transcription-jobs" {
		t.Errorf("unexpected jobs table default: %s", cfg.TranscriptionJobsTable)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SLOT_DURATION_MINUTES", "15")
	t.Setenv("USE_MEMORY_QUEUE", "true")
	t.Setenv("RATE_LIMIT_PER_SECOND", "2.5")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.SlotDurationMinutes != 15 {
		t.Errorf("expected slot duration 15, got %d", cfg.SlotDurationMinutes)
	}
	if !cfg.UseMemoryQueue {
		t.Error("expected memory queue enabled")
	}
	if cfg.RateLimitPerSecond != 2.5 {
		t.Errorf("expected rate limit 2.5, got %f", cfg.RateLimitPerSecond)
	}
}

func TestSlotDuration(t *testing.T) {
	cfg := &Config{SlotDurationMinutes: 45}
	if cfg.SlotDuration() != 45*time.Minute {
		t.Errorf("expected 45m, got %s", cfg.SlotDuration())
	}

	cfg = &Config{SlotDurationMinutes: 0}
	if cfg.SlotDuration() != 30*time.Minute {
		t.Errorf("expected fallback 30m, got %s", cfg.SlotDuration())
	}
}
