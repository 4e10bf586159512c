// Package media transcribes audio and video inputs with whisper.cpp and
// records the result next to each input.
package media

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/textify/internal/artifact"
	"github.com/nguyentantai21042004/textify/internal/display"
	"github.com/nguyentantai21042004/textify/internal/files"
)

func (p *implPipeline) CheckHeadroom(ctx context.Context, opts Options) {
	if opts.Device != "cuda" || !p.flags.GPUManagement || opts.IgnoreThreshold || p.flags.GPU == nil {
		return
	}
	util, err := p.flags.GPU.Utilization()
	if err != nil {
		p.logger.Debug(ctx, "Could not query GPU utilisation: %v", err)
		return
	}
	if util >= float64(opts.GPUThreshold) {
		p.logger.Warn(ctx, "GPU util %.0f%% >= threshold %d%%, continuing anyway.", util, opts.GPUThreshold)
	}
}

// Process transcribes files in order. A failing file is logged and recorded
// in its dump; the batch moves on. Cancellation stops before the next file.
func (p *implPipeline) Process(ctx context.Context, model Model, paths []string, opts Options) Result {
	var res Result
	if len(paths) == 0 {
		p.logger.Info(ctx, "No audio/video files to process.")
		return res
	}

	gpuModel := "Unknown"
	if p.flags.GPUManagement && p.flags.GPU != nil {
		if name, err := p.flags.GPU.Name(); err == nil {
			gpuModel = name
		}
	}
	p.logger.Info(ctx, "Processing %d audio/video files on %s (GPU: %s)", len(paths), model.Device(), gpuModel)

	fp16 := opts.Device == "cuda" && p.flags.Accelerator
	for i, path := range paths {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Interrupted, %d audio/video files left unprocessed", len(paths)-i)
			break
		}

		if err := p.processFile(ctx, model, path, TranscribeOptions{Language: opts.Language, FP16: fp16}); err != nil {
			res.Failed++
		} else {
			res.Processed++
		}
		if opts.AfterEach != nil {
			opts.AfterEach(path)
		}
	}
	return res
}

func (p *implPipeline) processFile(ctx context.Context, model Model, path string, opts TranscribeOptions) error {
	task := files.NewTask(path)

	duration := p.prober.Duration(ctx, path)
	estimate := p.estimator.Estimate(duration)

	p.logger.Info(ctx, "Processing %s (duration %.2fs)", path, duration)
	if estimate > 0 {
		p.logger.Info(ctx, "Estimated time: %s", display.FormatSeconds(estimate))
	}

	start := time.Now()
	dump, err := artifact.CreateDump(task.DumpPath(), artifact.MediaHeader(start, duration, estimate))
	if err != nil {
		p.logger.Error(ctx, "Failed on %s: %v", path, err)
		return err
	}

	text, err := model.Transcribe(ctx, path, opts)
	if err == nil {
		if werr := dump.Append(text); werr != nil {
			p.logger.Warn(ctx, "Could not record output for %s: %v", path, werr)
		}
		err = artifact.WriteMarker(task.MarkerPath(), text)
	}
	if err != nil {
		p.logger.Error(ctx, "Failed on %s: %v", path, err)
		if werr := dump.AppendError(err); werr != nil {
			p.logger.Warn(ctx, "Could not record error for %s: %v", path, werr)
		}
	}

	elapsed := time.Since(start)
	if werr := dump.Append(artifact.MediaFooter(time.Now(), elapsed)); werr != nil {
		p.logger.Warn(ctx, "Could not finish dump for %s: %v", path, werr)
	}
	p.logger.Info(ctx, "Finished %s in %s", path, display.FormatDuration(elapsed))
	return err
}
