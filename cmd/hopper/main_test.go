package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"hopper/internal/ledger"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := "[paths]\nstate_dir = \"" + filepath.Join(dir, "state") + "\"\nlog_dir = \"" + filepath.Join(dir, "logs") + "\"\n"
	path := filepath.Join(dir, "hopper.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("command %v failed: %v", args, err)
	}
	return out.String()
}

func TestHistoryCommandEmptyLedger(t *testing.T) {
	configPath := writeTestConfig(t)
	output := runCommand(t, "--config", configPath, "history")
	if !strings.Contains(output, "Ledger is empty.") {
		t.Fatalf("expected empty-ledger notice, got %q", output)
	}
}

func TestStatsAndHistoryCommandsRenderEntries(t *testing.T) {
	configPath := writeTestConfig(t)

	store, err := openLedger(&configPath)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	if err := store.RecordProcessed(context.Background(), "/inbox/2024_01_01_00_00.txt", 1.5); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close ledger: %v", err)
	}

	history := runCommand(t, "--config", configPath, "history")
	if !strings.Contains(history, "/inbox/2024_01_01_00_00.txt") {
		t.Fatalf("expected order path in history, got %q", history)
	}
	if !strings.Contains(history, "1.50") {
		t.Fatalf("expected minutes in history, got %q", history)
	}

	stats := runCommand(t, "--config", configPath, "stats")
	if !strings.Contains(stats, "Processed orders") || !strings.Contains(stats, "1.50") {
		t.Fatalf("unexpected stats output: %q", stats)
	}
}

func TestClearCommandEmptiesLedger(t *testing.T) {
	configPath := writeTestConfig(t)

	store, err := openLedger(&configPath)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	if err := store.RecordProcessed(context.Background(), "/inbox/a", 1); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close ledger: %v", err)
	}

	output := runCommand(t, "--config", configPath, "clear")
	if !strings.Contains(output, "Removed 1 ledger entries.") {
		t.Fatalf("unexpected clear output: %q", output)
	}
}

func TestConfigShowPrintsEffectiveValues(t *testing.T) {
	configPath := writeTestConfig(t)
	output := runCommand(t, "--config", configPath, "config", "show")
	if !strings.Contains(output, "seconds_per_unit") {
		t.Fatalf("expected worker settings in output: %q", output)
	}
	if !strings.Contains(output, configPath) {
		t.Fatalf("expected resolved config path in output: %q", output)
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "sample.toml")
	output := runCommand(t, "config", "init", "--path", target)
	if !strings.Contains(output, target) {
		t.Fatalf("expected target path in output: %q", output)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected sample written: %v", err)
	}
}

func TestRenderHistoryTableShortensRunID(t *testing.T) {
	entries := []*ledger.Entry{{
		ID:         1,
		RunID:      "0123456789abcdef",
		SourcePath: "/inbox/2024_01_01_00_00.txt",
		Minutes:    0.5,
		RecordedAt: time.Now(),
	}}
	rendered := renderHistoryTable(entries)
	if !strings.Contains(rendered, "01234567") {
		t.Fatalf("expected shortened run ID, got %q", rendered)
	}
	if strings.Contains(rendered, "0123456789abcdef") {
		t.Fatalf("expected run ID to be truncated, got %q", rendered)
	}
}
