package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CINEMAGO_API_URL", "")
	t.Setenv("CINEMAGO_TIMEOUT", "")
	t.Setenv("CINEMAGO_DEBUG", "")

	cfg := Load()
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base URL: %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 12*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if cfg.Debug {
		t.Fatal("expected debug off by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CINEMAGO_API_URL", "https://tickets.example.com/")
	t.Setenv("CINEMAGO_TIMEOUT", "30s")
	t.Setenv("CINEMAGO_DEBUG", "1")

	cfg := Load()
	if cfg.BaseURL != "https://tickets.example.com" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.BaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.HTTPTimeout)
	}
	if !cfg.Debug {
		t.Fatal("expected debug on")
	}
}

func TestLoad_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("CINEMAGO_API_URL", "")
	t.Setenv("CINEMAGO_TIMEOUT", "soon")
	t.Setenv("CINEMAGO_DEBUG", "")

	cfg := Load()
	if cfg.HTTPTimeout != 12*time.Second {
		t.Fatalf("expected default timeout for invalid value, got %v", cfg.HTTPTimeout)
	}
}
