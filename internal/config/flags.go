package config

// Command-line parsing. Flag defaults come from the config file (or the
// built-in defaults), so a flag only overrides what the user actually passes.

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ErrUsage marks an invalid combination of arguments.
var ErrUsage = errors.New("usage error")

// Parse builds the run configuration from the command-line arguments
// (without the program name). A --config file, when given, is loaded first.
func Parse(args []string, stderr io.Writer) (*Config, error) {
	cfg := Default()
	if path := configPath(args); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	fs := flag.NewFlagSet("textify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: textify [flags] [files...]")
		fmt.Fprintln(stderr, "Batch transcribe media and extract text with resource monitoring.")
		fs.PrintDefaults()
	}

	var configFile string
	fs.StringVar(&configFile, "config", "", "Path to a YAML configuration file")
	fs.StringVar(&cfg.Input.Dir, "input-dir", "", "Directory containing the files to process")
	fs.StringVar(&cfg.Logging.File, "log-file", cfg.Logging.File, "Log file path (a directory gets a host- and date-stamped file)")
	fs.IntVar(&cfg.Monitor.Interval, "monitoring-interval", cfg.Monitor.Interval, "Interval in seconds to record resource usage")
	fs.IntVar(&cfg.GPU.Threshold, "gpu-threshold", cfg.GPU.Threshold, "GPU usage percentage at or above which a warning is logged")
	fs.BoolVar(&cfg.GPU.IgnoreThreshold, "ignore-gpu-threshold", cfg.GPU.IgnoreThreshold, "Skip the GPU usage check")
	fs.StringVar(&cfg.Whisper.Model, "model", cfg.Whisper.Model, "Whisper model name (e.g. large, medium) or model file")
	fs.StringVar(&cfg.Whisper.Language, "language", cfg.Whisper.Language, "Transcription language (e.g. Japanese, English)")
	fs.StringVar(&cfg.Whisper.Device, "device", cfg.Whisper.Device, "Device to use for transcription (cuda or cpu)")
	fs.BoolVar(&cfg.Input.Verbose, "verbose", false, "Enable verbose logging output")
	fs.BoolVar(&cfg.Input.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.Input.Watch, "watch", false, "Watch --input-dir for new files and process them")
	fs.BoolVar(&cfg.Input.Watch, "w", false, "Same as --watch")

	files, err := parseInterspersed(fs, args)
	if errors.Is(err, flag.ErrHelp) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	cfg.Input.Files = files

	if err := cfg.checkInput(); err != nil {
		return nil, err
	}
	if cfg.Input.Verbose && cfg.Logging.Level == "warn" {
		cfg.Logging.Level = "info"
	}
	return cfg, nil
}

func (c *Config) checkInput() error {
	if c.Whisper.Device != "cuda" && c.Whisper.Device != "cpu" {
		return fmt.Errorf("%w: --device must be cuda or cpu", ErrUsage)
	}
	if len(c.Input.Files) == 0 && c.Input.Dir == "" {
		return fmt.Errorf("%w: either provide files as arguments or use --input-dir", ErrUsage)
	}
	if len(c.Input.Files) > 0 && c.Input.Dir != "" {
		return fmt.Errorf("%w: cannot use both file arguments and --input-dir at the same time", ErrUsage)
	}
	if c.Input.Watch && c.Input.Dir == "" {
		return fmt.Errorf("%w: --watch requires --input-dir", ErrUsage)
	}
	return nil
}

// parseInterspersed lets flags and positional files appear in any order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if rest[0] == "--" {
			return append(positional, rest[1:]...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func configPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			return ""
		}
		for _, prefix := range []string{"--config", "-config"} {
			if a == prefix && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, prefix+"=") {
				return strings.TrimPrefix(a, prefix+"=")
			}
		}
	}
	return ""
}
