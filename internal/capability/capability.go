// Package capability detects which optional subsystems are usable on this
// host. The result is an immutable Flags value handed to every component.
package capability

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/textify/internal/gpu"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/sysmetrics"
	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// Flags records subsystem availability. Handles are nil when absent.
type Flags struct {
	Accelerator   bool
	GPUManagement bool
	MediaProbe    bool
	Metrics       bool
	OCR           bool
	PDFRender     bool

	GPU gpu.Device
	CPU sysmetrics.CPU
}

// Options names the external tools and lets tests replace the hardware openers.
type Options struct {
	Executor      executor.Executor
	Logger        logger.Logger
	WhisperBinary string
	ProbeBinary   string
	OCRBinary     string
	RenderBinary  string
	// GPUBuild declares the whisper binary CUDA-capable.
	GPUBuild bool
	Verbose  bool

	OpenGPU func() (gpu.Device, error)
	OpenCPU func() (sysmetrics.CPU, error)
}

// Probe checks every subsystem. A failing check downgrades its flag and is
// logged at INFO when verbose, DEBUG otherwise; Probe itself never fails.
// Calling it again re-detects from scratch.
func Probe(ctx context.Context, opts Options) Flags {
	if opts.OpenGPU == nil {
		opts.OpenGPU = gpu.Open
	}
	if opts.OpenCPU == nil {
		opts.OpenCPU = sysmetrics.Open
	}
	note := opts.Logger.Debug
	if opts.Verbose {
		note = opts.Logger.Info
	}

	var flags Flags

	if dev, err := guard(opts.OpenGPU); err != nil {
		note(ctx, "NVML not available or no NVIDIA GPU detected: %v", err)
	} else {
		flags.GPU = dev
		flags.GPUManagement = true
	}

	switch _, err := opts.Executor.LookPath(opts.WhisperBinary); {
	case err != nil:
		note(ctx, "Transcription runtime %s not found. Will use CPU for processing.", opts.WhisperBinary)
	case !opts.GPUBuild:
		note(ctx, "%s built without CUDA support; CUDA disabled.", opts.WhisperBinary)
	case !flags.GPUManagement:
		note(ctx, "CUDA is not available. Will use CPU for processing.")
	default:
		flags.Accelerator = true
	}

	if _, err := opts.Executor.Execute(ctx, opts.ProbeBinary, "-version"); err != nil {
		note(ctx, "Error checking %s: %v", opts.ProbeBinary, err)
	} else {
		flags.MediaProbe = true
	}

	if c, err := guard(opts.OpenCPU); err != nil {
		note(ctx, "CPU metrics not available. CPU monitoring will be disabled: %v", err)
	} else {
		flags.CPU = c
		flags.Metrics = true
	}

	if _, err := opts.Executor.LookPath(opts.OCRBinary); err != nil {
		note(ctx, "OCR engine %s not available. Document and image processing will be disabled.", opts.OCRBinary)
	} else {
		flags.OCR = true
		note(ctx, "OCR engine %s is available for document and image processing.", opts.OCRBinary)

		if _, err := opts.Executor.LookPath(opts.RenderBinary); err != nil {
			note(ctx, "%s not available. PDF processing will be limited.", opts.RenderBinary)
		} else {
			flags.PDFRender = true
			note(ctx, "%s is available for PDF processing.", opts.RenderBinary)
		}
	}

	return flags
}

// GPUInfo lists the primary GPU's details, or nothing without NVML.
func (f Flags) GPUInfo() []string {
	if !f.GPUManagement || f.GPU == nil {
		return nil
	}
	return f.GPU.Info().Lines()
}

// guard converts a panic inside an opener into an error.
func guard[T any](open func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return open()
}
