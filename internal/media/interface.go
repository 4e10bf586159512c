package media

import "context"

// Model transcribes one audio or video file.
type Model interface {
	Transcribe(ctx context.Context, path string, opts TranscribeOptions) (string, error)
	// Device is where the model runs, "cuda" or "cpu".
	Device() string
}

// TranscribeOptions tunes a single transcription.
type TranscribeOptions struct {
	Language string
	// FP16 is only set when running on the accelerator.
	FP16 bool
}

// Loader resolves and prepares a transcription model.
type Loader interface {
	Load(ctx context.Context, name, device string, verbose bool) (Model, error)
}

// Pipeline processes audio/video inputs into marker and dump files.
type Pipeline interface {
	// CheckHeadroom warns when GPU utilization is already at or above the
	// threshold. It never blocks processing.
	CheckHeadroom(ctx context.Context, opts Options)
	Process(ctx context.Context, model Model, files []string, opts Options) Result
}

// Options carries the run-wide transcription settings.
type Options struct {
	Language        string
	GPUThreshold    int
	Device          string
	IgnoreThreshold bool
	// AfterEach is called once per attempted file.
	AfterEach func(path string)
}

// Result counts the files a Process call attempted.
type Result struct {
	Processed int
	Failed    int
}
