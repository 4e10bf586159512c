package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	log := NewWriter("info", &buf)

	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")
	log.Info(ctx, "formatted message: %s %d", "test", 123)

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Error("debug line written at info level")
	}
	for _, want := range []string{"[INFO] info message", "[WARN] warn message", "[ERROR] error message", "formatted message: test 123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"info doesn't log at warn level", "warn", "info", false},
		{"error always logs", "debug", "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestRunIDPrefix(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter("info", &buf)
	ctx := WithRunID(context.Background(), "0123456789abcdef")

	log.Info(ctx, "hello")
	if !strings.Contains(buf.String(), "[01234567] [INFO] hello") {
		t.Errorf("run id prefix missing: %q", buf.String())
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)

	got := ResolvePath(dir, "box", now)
	want := filepath.Join(dir, "batch_process_box_20240309.log")
	if got != want {
		t.Errorf("ResolvePath(dir) = %q, want %q", got, want)
	}

	file := filepath.Join(dir, "custom.log")
	if got := ResolvePath(file, "box", now); got != file {
		t.Errorf("ResolvePath(file) = %q, want %q", got, file)
	}
}

func TestOpenSplitsConsoleAndFileLevels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.log")
	var console bytes.Buffer

	log, err := Open(Options{ConsoleLevel: "warn", FileLevel: "info", FilePath: path, Console: &console})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !log.Created() {
		t.Error("Created() = false for a new file")
	}

	ctx := context.Background()
	log.Info(ctx, "only in file")
	log.Warn(ctx, "everywhere")
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "only in file") || !strings.Contains(string(data), "everywhere") {
		t.Errorf("file content = %q", data)
	}
	if strings.Contains(console.String(), "only in file") {
		t.Error("info line reached the warn-level console")
	}
	if !strings.Contains(console.String(), "everywhere") {
		t.Error("warn line missing from console")
	}

	again, err := Open(Options{ConsoleLevel: "warn", FilePath: path, Console: &console})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer again.Close()
	if again.Created() {
		t.Error("Created() = true for an existing file")
	}
}
