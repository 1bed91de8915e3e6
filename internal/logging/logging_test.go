package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()

	if filepath.Base(path) != "eldaracheck.log" {
		t.Errorf("DefaultLogPath should end with eldaracheck.log, got: %s", path)
	}
	if !strings.Contains(path, filepath.Join(".eldaracheck", "logs")) {
		t.Errorf("DefaultLogPath should be under .eldaracheck/logs, got: %s", path)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "debug" {
		t.Errorf("expected level 'debug', got: %s", cfg.Level)
	}
	if cfg.WriteToStderr {
		t.Error("expected WriteToStderr to be false")
	}
	if cfg.MaxSizeMB <= 0 || cfg.MaxFiles <= 0 {
		t.Errorf("expected positive rotation limits, got %d MB / %d files", cfg.MaxSizeMB, cfg.MaxFiles)
	}
}

func TestServeConfig_NeverWritesToStderr(t *testing.T) {
	cfg := ServeConfig("info")

	if cfg.WriteToStderr {
		t.Error("serve logging must not write to stderr")
	}
	if cfg.Level != "info" {
		t.Errorf("expected level 'info', got: %s", cfg.Level)
	}
}

func TestSetup_WritesJSONRecords(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "test.log")
	cfg := Config{Level: "debug", FilePath: logPath, MaxSizeMB: 1, MaxFiles: 2}

	logger, cleanup, err := Setup(cfg)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Debug("Check completed", slog.String("check", "descriptor"))
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file was not created: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("log record is not JSON: %v", err)
	}
	if record["msg"] != "Check completed" || record["check"] != "descriptor" {
		t.Errorf("unexpected record: %v", record)
	}
}

func TestSetup_RespectsLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "level.log")

	logger, cleanup, err := Setup(Config{Level: "warn", FilePath: logPath, MaxSizeMB: 1, MaxFiles: 1})
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	cleanup()

	data, _ := os.ReadFile(logPath)
	if strings.Contains(string(data), "dropped") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(string(data), "kept") {
		t.Error("warn record should be written")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()

	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("discard logger should not be enabled at any level")
	}
}

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"DEBUG", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"unknown", "INFO"},
	}

	for _, tc := range tests {
		level := LevelFromString(tc.input)
		if level.String() != tc.expected {
			t.Errorf("LevelFromString(%q) = %s, want %s", tc.input, level.String(), tc.expected)
		}
	}
}

// ============================================================================
// Writer Rotation Tests
// ============================================================================

func TestRotatingWriter_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")

	// 0 MB rotates on every write to a non-empty file
	w, err := NewRotatingWriter(logPath, 0, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	if _, err := w.Write([]byte("first\n")); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if _, err := w.Write([]byte("second\n")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	current, _ := os.ReadFile(logPath)
	rotated, _ := os.ReadFile(logPath + ".1")
	if string(current) != "second\n" {
		t.Errorf("current log = %q, want %q", current, "second\n")
	}
	if string(rotated) != "first\n" {
		t.Errorf("rotated log = %q, want %q", rotated, "first\n")
	}
}

func TestRotatingWriter_MaxFilesLimit(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "maxfiles.log")

	w, err := NewRotatingWriter(logPath, 0, 2)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		_, _ = w.Write([]byte(fmt.Sprintf("write %d\n", i)))
	}

	for _, suffix := range []string{"", ".1", ".2"} {
		if _, err := os.Stat(logPath + suffix); err != nil {
			t.Errorf("expected %s to exist: %v", logPath+suffix, err)
		}
	}
	if _, err := os.Stat(logPath + ".3"); !os.IsNotExist(err) {
		t.Error("rotated file .3 should not exist (beyond maxFiles)")
	}
	oldest, _ := os.ReadFile(logPath + ".2")
	if string(oldest) != "write 2\n" {
		t.Errorf("oldest kept log = %q, want %q", oldest, "write 2\n")
	}
}

func TestRotatingWriter_AppendsToExistingFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "append.log")
	if err := os.WriteFile(logPath, []byte("earlier\n"), 0o644); err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}

	w, err := NewRotatingWriter(logPath, 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	_, _ = w.Write([]byte("later\n"))
	_ = w.Close()

	data, _ := os.ReadFile(logPath)
	if string(data) != "earlier\nlater\n" {
		t.Errorf("log = %q, want appended content", data)
	}
}

func TestRotatingWriter_WriteAfterClose(t *testing.T) {
	w, err := NewRotatingWriter(filepath.Join(t.TempDir(), "closed.log"), 1, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := w.Write([]byte("late\n")); err == nil {
		t.Error("write after close should fail")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close should be a no-op, got: %v", err)
	}
}

func TestRotatingWriter_ConcurrentWrites(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "concurrent.log")

	w, err := NewRotatingWriter(logPath, 10, 3)
	if err != nil {
		t.Fatalf("failed to create writer: %v", err)
	}
	defer w.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = w.Write([]byte(fmt.Sprintf(`{"id":%d,"iter":%d}`+"\n", id, j)))
			}
		}(i)
	}
	wg.Wait()
	_ = w.Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 1000 {
		t.Errorf("expected 1000 lines, got %d", lines)
	}
}
