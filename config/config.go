package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 12 * time.Second
)

// Config holds everything the client reads from the environment.
type Config struct {
	BaseURL     string
	HTTPTimeout time.Duration
	Debug       bool
}

// Load reads .env (if present) and the CINEMAGO_* variables. A missing
// .env is not an error; system environment always wins over defaults.
func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{
		BaseURL:     defaultBaseURL,
		HTTPTimeout: defaultTimeout,
	}
	if raw := strings.TrimSpace(os.Getenv("CINEMAGO_API_URL")); raw != "" {
		cfg.BaseURL = strings.TrimRight(raw, "/")
	}
	if raw := strings.TrimSpace(os.Getenv("CINEMAGO_TIMEOUT")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.HTTPTimeout = d
		}
	}
	cfg.Debug = strings.TrimSpace(os.Getenv("CINEMAGO_DEBUG")) != ""
	return cfg
}

// Debugf writes a debug line to stderr when CINEMAGO_DEBUG is set. The TUI
// owns stdout, so diagnostics stay on stderr.
func (c Config) Debugf(format string, args ...any) {
	if !c.Debug {
		return
	}
	fmt.Fprintf(os.Stderr, "[cinemago] "+format+"\n", args...)
}
