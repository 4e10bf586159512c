package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Whisper WhisperConfig `yaml:"whisper"`
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	OCR     OCRConfig     `yaml:"ocr"`
	PDF     PDFConfig     `yaml:"pdf"`
	GPU     GPUConfig     `yaml:"gpu"`
	Monitor MonitorConfig `yaml:"monitor"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Display DisplayConfig `yaml:"display"`

	// Populated from the command line only.
	Input InputConfig `yaml:"-"`
}

type WhisperConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ModelDir   string `yaml:"model_dir"`
	Model      string `yaml:"model"`
	Language   string `yaml:"language"`
	Device     string `yaml:"device"`
	Threads    int    `yaml:"threads"`
	// UseGPU states that the whisper binary was built with CUDA support.
	UseGPU *bool `yaml:"use_gpu"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
}

type OCRConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PDFConfig struct {
	RenderPath string `yaml:"render_path"`
	DPI        int    `yaml:"dpi"`
}

type GPUConfig struct {
	Threshold       int           `yaml:"threshold"`
	IgnoreThreshold bool          `yaml:"ignore_threshold"`
	Estimates       []EstimateRow `yaml:"estimates"`
}

// EstimateRow is one affine processing-time model keyed by a GPU name substring.
type EstimateRow struct {
	Match     string  `yaml:"match"`
	Slope     float64 `yaml:"slope"`
	Intercept float64 `yaml:"intercept"`
}

type MonitorConfig struct {
	// Interval is the sampling period in seconds.
	Interval int `yaml:"interval"`
}

type WatchConfig struct {
	StableTimeout time.Duration `yaml:"stable_timeout"`
	PollInterval  time.Duration `yaml:"poll_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type DisplayConfig struct {
	Progress *bool `yaml:"progress"`
}

type InputConfig struct {
	Dir     string
	Files   []string
	Watch   bool
	Verbose bool
}

// Default returns a Config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads a YAML file and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Monitor.Interval < 0 {
		return fmt.Errorf("monitor.interval must not be negative")
	}
	if c.GPU.Threshold < 0 || c.GPU.Threshold > 100 {
		return fmt.Errorf("gpu.threshold must be between 0 and 100")
	}
	for i, row := range c.GPU.Estimates {
		if row.Match == "" {
			return fmt.Errorf("gpu.estimates[%d].match is required", i)
		}
	}
	if c.Whisper.Device != "" && c.Whisper.Device != "cuda" && c.Whisper.Device != "cpu" {
		return fmt.Errorf("whisper.device must be cuda or cpu, got %q", c.Whisper.Device)
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelDir == "" {
		c.Whisper.ModelDir = "models"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "large"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "Japanese"
	}
	if c.Whisper.Device == "" {
		c.Whisper.Device = "cuda"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.UseGPU == nil {
		c.Whisper.UseGPU = boolPtr(true)
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.OCR.BinaryPath == "" {
		c.OCR.BinaryPath = "tesseract"
	}
	if c.PDF.RenderPath == "" {
		c.PDF.RenderPath = "pdftoppm"
	}
	if c.PDF.DPI == 0 {
		c.PDF.DPI = 150
	}
	if c.GPU.Threshold == 0 {
		c.GPU.Threshold = 20
	}
	if c.Monitor.Interval == 0 {
		c.Monitor.Interval = 10
	}
	if c.Watch.StableTimeout == 0 {
		c.Watch.StableTimeout = 30 * time.Second
	}
	if c.Watch.PollInterval == 0 {
		c.Watch.PollInterval = 400 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.File == "" {
		c.Logging.File = "batch_process.log"
	}
	if c.Display.Progress == nil {
		c.Display.Progress = boolPtr(true)
	}

	return nil
}

// GPUBuild reports whether the whisper binary is declared CUDA-capable.
func (c *Config) GPUBuild() bool {
	return c.Whisper.UseGPU != nil && *c.Whisper.UseGPU
}

// ShowProgress reports whether the batch progress bar is enabled.
func (c *Config) ShowProgress() bool {
	return c.Display.Progress != nil && *c.Display.Progress
}

func boolPtr(b bool) *bool { return &b }
