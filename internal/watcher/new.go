package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/textify/internal/logger"
)

const (
	defaultStableTimeout = 30 * time.Second
	defaultPollInterval  = 400 * time.Millisecond
)

// Options tunes the stability wait.
type Options struct {
	StableTimeout time.Duration
	PollInterval  time.Duration
}

// New creates a Watcher on dir. Sub-directories are not watched.
func New(dir string, handler Handler, log logger.Logger, opts Options) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.StableTimeout <= 0 {
		opts.StableTimeout = defaultStableTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	return &implWatcher{
		dir:     dir,
		handler: handler,
		logger:  log,
		watcher: watcher,
		opts:    opts,
	}, nil
}
