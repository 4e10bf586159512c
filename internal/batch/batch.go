// Package batch orchestrates a textify session: discovery, resource
// monitoring, the per-category pipelines and the optional watch session.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/nguyentantai21042004/textify/internal/document"
	"github.com/nguyentantai21042004/textify/internal/files"
	"github.com/nguyentantai21042004/textify/internal/media"
)

func (r *implRunner) Run(ctx context.Context) (Stats, error) {
	in := r.cfg.Input

	if r.device == "cuda" && !r.flags.Accelerator {
		r.logger.Warn(ctx, "CUDA requested but not available to the transcription runtime. Falling back to CPU.")
		r.device = "cpu"
	}

	eligible, err := files.Eligible(ctx, files.Source{Dir: in.Dir, Files: in.Files}, in.Verbose, r.logger)
	if err != nil {
		r.logger.Error(ctx, "Failed to scan for files: %v", err)
		return Stats{}, fmt.Errorf("discover files: %w", err)
	}

	if len(eligible) == 0 && !in.Watch {
		msg := "No unprocessed files found in the provided file list."
		if in.Dir != "" {
			msg = fmt.Sprintf("No unprocessed audio/video files found in %s.", in.Dir)
		}
		r.logger.Info(ctx, "%s", msg)
		fmt.Fprintln(r.out, msg)
		return Stats{}, nil
	}
	if len(eligible) == 0 {
		r.logger.Info(ctx, "No unprocessed files found. Waiting for new files...")
	}

	av, docs := files.Categorize(eligible)
	r.addStats(Stats{Eligible: len(eligible), AudioVideo: len(av), Documents: len(docs)})
	r.logger.Info(ctx, "Found %d unprocessed files (%d AV, %d document/image)", len(eligible), len(av), len(docs))

	if r.newLog {
		r.logSystemInfo(ctx)
	}

	r.monitor.Start(ctx)
	start := time.Now()

	bar := r.newBar(len(av) + len(docs))
	if err := r.process(ctx, av, docs, bar); err != nil {
		r.finish(ctx, start)
		return r.snapshot(), err
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if in.Watch {
		if err := r.watchDir(ctx); err != nil {
			r.finish(ctx, start)
			return r.snapshot(), err
		}
	}

	r.finish(ctx, start)
	stats := r.snapshot()
	if !in.Watch && ctx.Err() != nil {
		return stats, ctx.Err()
	}
	return stats, nil
}

// process runs the audio/video pipeline, then the document pipeline.
func (r *implRunner) process(ctx context.Context, av, docs []string, bar *progressbar.ProgressBar) error {
	advance := func(string) {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if len(av) > 0 {
		model, err := r.ensureModel(ctx)
		if err != nil {
			r.logger.Error(ctx, "%v", err)
			return err
		}
		opts := r.mediaOptions()
		opts.AfterEach = advance
		r.addMedia(r.media.Process(ctx, model, av, opts))
	}

	if len(docs) > 0 {
		r.logger.Info(ctx, "Processing document/image files via OCR...")
		r.addDocuments(r.documents.Process(ctx, docs, document.Options{AfterEach: advance}))
	}
	return nil
}

// ensureModel loads the transcription model on first use.
func (r *implRunner) ensureModel(ctx context.Context) (media.Model, error) {
	r.modelMu.Lock()
	defer r.modelMu.Unlock()

	if r.model != nil {
		return r.model, nil
	}
	r.media.CheckHeadroom(ctx, r.mediaOptions())

	model, err := r.loader.Load(ctx, r.cfg.Whisper.Model, r.device, r.cfg.Input.Verbose)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", r.cfg.Whisper.Model, err)
	}
	r.model = model
	return model, nil
}

func (r *implRunner) mediaOptions() media.Options {
	return media.Options{
		Language:        r.cfg.Whisper.Language,
		GPUThreshold:    r.cfg.GPU.Threshold,
		Device:          r.device,
		IgnoreThreshold: r.cfg.GPU.IgnoreThreshold,
	}
}

func (r *implRunner) watchDir(ctx context.Context) error {
	if r.watch == nil {
		return errors.New("watch mode is not configured")
	}
	w, err := r.watch(r.cfg.Input.Dir, r.HandleEvent)
	if err != nil {
		r.logger.Error(ctx, "Could not start watching %s: %v", r.cfg.Input.Dir, err)
		return fmt.Errorf("watch %s: %w", r.cfg.Input.Dir, err)
	}
	defer w.Stop()

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		r.logger.Info(ctx, "Interrupted by user.")
		return nil
	}
	return err
}

// finish logs the closing utilization figures and stops the monitor.
func (r *implRunner) finish(ctx context.Context, start time.Time) {
	elapsed := time.Since(start)

	if r.flags.Metrics && r.flags.CPU != nil {
		if pct, err := r.flags.CPU.Percent(); err == nil {
			r.logger.Info(ctx, "Final CPU util: %.1f%%", pct)
		}
	}
	if r.flags.GPUManagement && r.flags.GPU != nil {
		if util, err := r.flags.GPU.Utilization(); err == nil {
			r.logger.Info(ctx, "Final GPU util: %.0f%%", util)
		}
	}
	r.logger.Info(ctx, "Total batch time: %.2f s", elapsed.Seconds())

	summary := r.monitor.Stop()

	r.statsMu.Lock()
	r.stats.Elapsed = elapsed
	r.stats.Resources = summary
	r.statsMu.Unlock()
}

func (r *implRunner) logSystemInfo(ctx context.Context) {
	if !r.flags.MediaProbe {
		r.logger.Warn(ctx, "ffprobe not available, duration estimation disabled.")
	}
	r.logger.Info(ctx, "System: %s %s", runtime.GOOS, runtime.GOARCH)
	r.logger.Info(ctx, "Go: %s", runtime.Version())
	for _, line := range r.flags.GPUInfo() {
		r.logger.Info(ctx, "GPU %s", line)
	}
}

func (r *implRunner) newBar(total int) *progressbar.ProgressBar {
	if r.progress == nil || total == 0 {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (r *implRunner) addStats(s Stats) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.Eligible += s.Eligible
	r.stats.AudioVideo += s.AudioVideo
	r.stats.Documents += s.Documents
}

func (r *implRunner) addMedia(res media.Result) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.Transcribed += res.Processed
	r.stats.Failed += res.Failed
}

func (r *implRunner) addDocuments(res document.Result) {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	r.stats.Recognized += res.Processed
	r.stats.Failed += res.Failed
}

func (r *implRunner) snapshot() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}
