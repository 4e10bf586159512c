package monitor

import (
	"time"

	"github.com/nguyentantai21042004/textify/internal/gpu"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/sysmetrics"
)

const defaultInterval = 10 * time.Second

// Options configures a Monitor. A nil CPU or GPU disables that series.
type Options struct {
	CPU      sysmetrics.CPU
	GPU      gpu.Device
	Interval time.Duration
	Logger   logger.Logger
	// Now is the sample clock; defaults to time.Now.
	Now func() time.Time
}

// New creates a Monitor that has not started yet.
func New(opts Options) Monitor {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &implMonitor{
		cpu:      opts.CPU,
		gpu:      opts.GPU,
		interval: opts.Interval,
		logger:   opts.Logger,
		now:      opts.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}
