// Package testsupport provides shared fixtures for hopper tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"hopper/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per
// test, a compressed time unit, and a small reporting window.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WatchDir = filepath.Join(base, "inbox")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Worker.SecondsPerUnit = 0
	cfg.Worker.WindowKeep = 3
	cfg.Worker.JitterMaxMillis = 1
	cfg.Watch.PollIntervalMillis = 10

	if err := os.MkdirAll(cfg.Paths.WatchDir, 0o755); err != nil {
		t.Fatalf("mkdir watch dir: %v", err)
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSecondsPerUnit overrides the time scale on the test config.
func WithSecondsPerUnit(scale float64) ConfigOption {
	return func(c *config.Config) {
		c.Worker.SecondsPerUnit = scale
	}
}

// WithWindowKeep overrides the rolling window size on the test config.
func WithWindowKeep(keep int) ConfigOption {
	return func(c *config.Config) {
		c.Worker.WindowKeep = keep
	}
}
