package media

import (
	"context"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// Prober reads container durations with ffprobe.
type Prober struct {
	exec      executor.Executor
	binary    string
	available bool
	logger    logger.Logger
}

func NewProber(exec executor.Executor, binary string, available bool, log logger.Logger) *Prober {
	return &Prober{exec: exec, binary: binary, available: available, logger: log}
}

// Duration returns the media length in seconds. It is 0 when ffprobe is
// unavailable, and 0 with a warning when ffprobe fails or prints garbage.
func (p *Prober) Duration(ctx context.Context, path string) float64 {
	if !p.available {
		return 0
	}

	out, err := p.exec.Execute(ctx, p.binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		p.logger.Warn(ctx, "ffprobe error: %v", err)
		return 0
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		p.logger.Warn(ctx, "Could not parse duration: %q", out)
		return 0
	}
	return d
}
