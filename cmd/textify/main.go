package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/textify/internal/batch"
	"github.com/nguyentantai21042004/textify/internal/capability"
	"github.com/nguyentantai21042004/textify/internal/config"
	"github.com/nguyentantai21042004/textify/internal/display"
	"github.com/nguyentantai21042004/textify/internal/document"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/media"
	"github.com/nguyentantai21042004/textify/internal/monitor"
	"github.com/nguyentantai21042004/textify/internal/ocr"
	"github.com/nguyentantai21042004/textify/internal/pdf"
	"github.com/nguyentantai21042004/textify/internal/watcher"
	"github.com/nguyentantai21042004/textify/pkg/executor"
)

const version = "1.0.0"

const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitInterrupt = 130
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) (code int) {
	cfg, err := config.Parse(args, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		return exitOK
	case errors.Is(err, config.ErrUsage):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	case err != nil:
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}

	log, err := logger.Open(logger.Options{
		ConsoleLevel: cfg.Logging.Level,
		FileLevel:    "info",
		FilePath:     cfg.Logging.File,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return exitError
	}
	defer log.Close()

	ctx := logger.WithRunID(context.Background(), uuid.NewString())
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "Unhandled exception: %v\n%s", r, debug.Stack())
			fmt.Println("Error:", r)
			code = exitError
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	exec := executor.New()
	flags := capability.Probe(ctx, capability.Options{
		Executor:      exec,
		Logger:        log,
		WhisperBinary: cfg.Whisper.BinaryPath,
		ProbeBinary:   cfg.FFmpeg.ProbePath,
		OCRBinary:     cfg.OCR.BinaryPath,
		RenderBinary:  cfg.PDF.RenderPath,
		GPUBuild:      cfg.GPUBuild(),
		Verbose:       cfg.Input.Verbose,
	})

	fmt.Println(display.Banner(version, source(cfg), cfg.Input.Watch, cfg.Whisper.Device))

	runner := batch.New(batch.Deps{
		Config:    cfg,
		Flags:     flags,
		Logger:    log,
		Media:     media.New(cfg, exec, flags, log),
		Loader:    media.NewLoader(cfg, exec, flags, log),
		Documents: document.New(flags, ocr.New(exec, cfg.OCR.BinaryPath, nil), pdf.NewOpener(exec, cfg.PDF.RenderPath, cfg.PDF.DPI), log),
		Monitor: monitor.New(monitor.Options{
			CPU:      flags.CPU,
			GPU:      flags.GPU,
			Interval: time.Duration(cfg.Monitor.Interval) * time.Second,
			Logger:   log,
		}),
		Watch: func(dir string, handler watcher.Handler) (watcher.Watcher, error) {
			return watcher.New(dir, handler, log, watcher.Options{
				StableTimeout: cfg.Watch.StableTimeout,
				PollInterval:  cfg.Watch.PollInterval,
			})
		},
		NewLogFile: log.Created(),
		Out:        os.Stdout,
		Progress:   progressWriter(cfg),
	})

	stats, err := runner.Run(ctx)
	switch {
	case errors.Is(err, context.Canceled):
		log.Info(ctx, "Interrupted by user.")
		fmt.Println("Interrupted by user.")
		return exitInterrupt
	case err != nil:
		log.Error(ctx, "Unhandled error: %v", err)
		fmt.Println("Error:", err)
		return exitError
	}

	if stats.Eligible > 0 {
		fmt.Println(summary(stats))
	}
	log.Info(ctx, "Log file: %s", log.Path())
	fmt.Printf("Log file: %s\n", log.Path())
	return exitOK
}

func source(cfg *config.Config) string {
	if cfg.Input.Dir != "" {
		return cfg.Input.Dir
	}
	return fmt.Sprintf("%d file(s)", len(cfg.Input.Files))
}

func progressWriter(cfg *config.Config) io.Writer {
	if !cfg.ShowProgress() {
		return nil
	}
	return os.Stderr
}

func summary(s batch.Stats) string {
	rows := []display.Row{
		{Label: "Files", Value: fmt.Sprintf("%d (%d AV, %d document/image)", s.Eligible, s.AudioVideo, s.Documents)},
		{Label: "Transcribed", Value: fmt.Sprintf("%d", s.Transcribed)},
		{Label: "Recognized", Value: fmt.Sprintf("%d", s.Recognized)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
		{Label: "Elapsed", Value: display.FormatDuration(s.Elapsed)},
	}
	if s.Resources.GPUPower != nil {
		rows = append(rows, display.Row{Label: "GPU energy", Value: fmt.Sprintf("%.4f Wh", s.Resources.EnergyWh)})
	}
	return display.Panel("Summary", rows)
}
