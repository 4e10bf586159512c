package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "negative interval",
			config:  Config{Monitor: MonitorConfig{Interval: -1}},
			wantErr: true,
		},
		{
			name:    "threshold out of range",
			config:  Config{GPU: GPUConfig{Threshold: 101}},
			wantErr: true,
		},
		{
			name:    "estimate without match",
			config:  Config{GPU: GPUConfig{Estimates: []EstimateRow{{Slope: 1}}}},
			wantErr: true,
		},
		{
			name:    "unknown device",
			config:  Config{Whisper: WhisperConfig{Device: "tpu"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Whisper.Model != "large" {
		t.Errorf("Model = %v, want large", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "Japanese" {
		t.Errorf("Language = %v, want Japanese", cfg.Whisper.Language)
	}
	if cfg.Whisper.Device != "cuda" {
		t.Errorf("Device = %v, want cuda", cfg.Whisper.Device)
	}
	if cfg.GPU.Threshold != 20 {
		t.Errorf("Threshold = %v, want 20", cfg.GPU.Threshold)
	}
	if cfg.Monitor.Interval != 10 {
		t.Errorf("Interval = %v, want 10", cfg.Monitor.Interval)
	}
	if cfg.Logging.File != "batch_process.log" {
		t.Errorf("File = %v, want batch_process.log", cfg.Logging.File)
	}
	if cfg.Watch.StableTimeout != 30*time.Second || cfg.Watch.PollInterval != 400*time.Millisecond {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if !cfg.GPUBuild() || !cfg.ShowProgress() {
		t.Error("GPUBuild and ShowProgress should default to true")
	}
}

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
whisper:
  binary_path: "./whisper-cli"
  model_dir: "models"
  language: "English"
  use_gpu: false

gpu:
  threshold: 50
  estimates:
    - match: "RTX 4070"
      slope: 0.089
      intercept: 15

watch:
  stable_timeout: 5s
  poll_interval: 100ms

display:
  progress: false
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	// Test loading
	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.BinaryPath != "./whisper-cli" {
		t.Errorf("BinaryPath = %v, want %v", cfg.Whisper.BinaryPath, "./whisper-cli")
	}
	if cfg.Whisper.Language != "English" {
		t.Errorf("Language = %v, want English", cfg.Whisper.Language)
	}
	if cfg.GPUBuild() {
		t.Error("GPUBuild() = true, want false")
	}
	if cfg.ShowProgress() {
		t.Error("ShowProgress() = true, want false")
	}
	if cfg.GPU.Threshold != 50 {
		t.Errorf("Threshold = %v, want 50", cfg.GPU.Threshold)
	}
	want := []EstimateRow{{Match: "RTX 4070", Slope: 0.089, Intercept: 15}}
	if !reflect.DeepEqual(cfg.GPU.Estimates, want) {
		t.Errorf("Estimates = %+v, want %+v", cfg.GPU.Estimates, want)
	}
	if cfg.Watch.StableTimeout != 5*time.Second || cfg.Watch.PollInterval != 100*time.Millisecond {
		t.Errorf("Watch = %+v", cfg.Watch)
	}
	if cfg.Whisper.Model != "large" {
		t.Errorf("Model default not applied: %v", cfg.Whisper.Model)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"neither files nor input dir", nil},
		{"both files and input dir", []string{"file1.mp3", "--input-dir", "/path"}},
		{"watch without input dir", []string{"--watch", "file1.mp3"}},
		{"bad device", []string{"--device", "tpu", "file1.mp3"}},
		{"unknown flag", []string{"--frobnicate", "file1.mp3"}},
		{"bad integer", []string{"--gpu-threshold", "high", "file1.mp3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.args, io.Discard)
			if !errors.Is(err, ErrUsage) {
				t.Errorf("Parse() error = %v, want ErrUsage", err)
			}
		})
	}
}

func TestParseFilesAndDir(t *testing.T) {
	cfg, err := Parse([]string{"file1.mp3", "file2.wav"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Input.Files, []string{"file1.mp3", "file2.wav"}) {
		t.Errorf("Files = %v", cfg.Input.Files)
	}
	if cfg.Input.Dir != "" {
		t.Errorf("Dir = %q, want empty", cfg.Input.Dir)
	}

	cfg, err = Parse([]string{"--input-dir", "/path/to/dir"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Input.Files) != 0 || cfg.Input.Dir != "/path/to/dir" {
		t.Errorf("Input = %+v", cfg.Input)
	}
}

func TestParseCustomValues(t *testing.T) {
	cfg, err := Parse([]string{
		"--input-dir", "/test",
		"--model", "tiny",
		"--language", "English",
		"--device", "cpu",
		"--gpu-threshold", "50",
		"--monitoring-interval", "5",
		"--ignore-gpu-threshold",
		"--verbose",
		"--log-file", "test.log",
		"--watch",
	}, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Whisper.Model != "tiny" || cfg.Whisper.Language != "English" || cfg.Whisper.Device != "cpu" {
		t.Errorf("Whisper = %+v", cfg.Whisper)
	}
	if cfg.GPU.Threshold != 50 || !cfg.GPU.IgnoreThreshold {
		t.Errorf("GPU = %+v", cfg.GPU)
	}
	if cfg.Monitor.Interval != 5 {
		t.Errorf("Interval = %d, want 5", cfg.Monitor.Interval)
	}
	if !cfg.Input.Verbose || !cfg.Input.Watch {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Logging.File != "test.log" {
		t.Errorf("File = %q", cfg.Logging.File)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("verbose should raise console level to info, got %q", cfg.Logging.Level)
	}
}

func TestParseInterleavedFlags(t *testing.T) {
	cfg, err := Parse([]string{"a.mp3", "-v", "b.pdf", "--model", "small", "c.png"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Input.Files, []string{"a.mp3", "b.pdf", "c.png"}) {
		t.Errorf("Files = %v", cfg.Input.Files)
	}
	if !cfg.Input.Verbose || cfg.Whisper.Model != "small" {
		t.Errorf("flags after positionals lost: %+v %+v", cfg.Input, cfg.Whisper)
	}
}

func TestParseConfigFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textify.yaml")
	if err := os.WriteFile(path, []byte("whisper:\n  model: medium\n  language: English\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Parse([]string{"--config", path, "--language", "French", "x.mp3"}, io.Discard)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Whisper.Model != "medium" {
		t.Errorf("Model = %q, want medium from file", cfg.Whisper.Model)
	}
	if cfg.Whisper.Language != "French" {
		t.Errorf("Language = %q, want flag override French", cfg.Whisper.Language)
	}
}
