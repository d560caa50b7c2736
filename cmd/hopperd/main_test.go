package main

import (
	"os"
	"path/filepath"
	"testing"

	"hopper/internal/logging"
)

func TestValidateWatchDirMissingArgument(t *testing.T) {
	for _, dir := range []string{"", "   "} {
		if _, code := validateWatchDir(dir, logging.NewNop()); code != exitMissingArg {
			t.Fatalf("dir %q: expected exit %d, got %d", dir, exitMissingArg, code)
		}
	}
}

func TestValidateWatchDirNotExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	if _, code := validateWatchDir(missing, logging.NewNop()); code != exitNotExist {
		t.Fatalf("expected exit %d, got %d", exitNotExist, code)
	}
}

func TestValidateWatchDirNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, code := validateWatchDir(file, logging.NewNop()); code != exitNotDir {
		t.Fatalf("expected exit %d, got %d", exitNotDir, code)
	}
}

func TestValidateWatchDirSuccess(t *testing.T) {
	dir := t.TempDir()
	expanded, code := validateWatchDir(dir, logging.NewNop())
	if code != exitOK {
		t.Fatalf("expected exit %d, got %d", exitOK, code)
	}
	if !filepath.IsAbs(expanded) {
		t.Fatalf("expected absolute path, got %q", expanded)
	}
}

func TestRunRejectsMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "hopper.toml")
	content := "[paths]\nstate_dir = \"" + filepath.Join(dir, "state") + "\"\nlog_dir = \"" + filepath.Join(dir, "logs") + "\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if code := run([]string{"--config", configPath}); code != exitMissingArg {
		t.Fatalf("expected exit %d for no watch dir, got %d", exitMissingArg, code)
	}
}

func TestRunFailsOnBrokenConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "hopper.toml")
	if err := os.WriteFile(configPath, []byte("[paths\nbroken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if code := run([]string{"--config", configPath}); code != exitFailure {
		t.Fatalf("expected exit %d for broken config, got %d", exitFailure, code)
	}
}
