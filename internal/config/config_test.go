package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOCKMENTOR_AI_PROVIDER", "")
	t.Setenv("STOCKMENTOR_PORT", "")
	t.Setenv("STOCKMENTOR_DB_PATH", "")
	t.Setenv("STOCKMENTOR_DATA_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.AIProvider != "gemini" {
		t.Errorf("AIProvider = %q, want gemini", cfg.AIProvider)
	}
	if cfg.Addr() != "0.0.0.0:8000" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoadProviderKeys(t *testing.T) {
	t.Setenv("STOCKMENTOR_AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "key-a")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AIAPIKey != "key-a" {
		t.Errorf("AIAPIKey = %q, want key-a", cfg.AIAPIKey)
	}
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	t.Setenv("STOCKMENTOR_AI_PROVIDER", "oracle")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("STOCKMENTOR_AI_PROVIDER", "gemini")
	t.Setenv("STOCKMENTOR_PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" https://a.example , ,https://b.example")
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("splitList = %v", got)
	}
}
