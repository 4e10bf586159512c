package media

import (
	"github.com/nguyentantai21042004/textify/internal/capability"
	"github.com/nguyentantai21042004/textify/internal/config"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/pkg/executor"
)

type implPipeline struct {
	flags     capability.Flags
	prober    *Prober
	estimator Estimator
	logger    logger.Logger
}

// New creates the audio/video Pipeline.
func New(cfg *config.Config, exec executor.Executor, flags capability.Flags, log logger.Logger) Pipeline {
	return &implPipeline{
		flags:     flags,
		prober:    NewProber(exec, cfg.FFmpeg.ProbePath, flags.MediaProbe, log),
		estimator: NewEstimator(TableFromConfig(cfg.GPU.Estimates), flags),
		logger:    log,
	}
}

type implLoader struct {
	cfg    config.WhisperConfig
	ffmpeg string
	exec   executor.Executor
	flags  capability.Flags
	logger logger.Logger
}

// NewLoader creates a Loader for whisper.cpp models.
func NewLoader(cfg *config.Config, exec executor.Executor, flags capability.Flags, log logger.Logger) Loader {
	return &implLoader{
		cfg:    cfg.Whisper,
		ffmpeg: cfg.FFmpeg.BinaryPath,
		exec:   exec,
		flags:  flags,
		logger: log,
	}
}
