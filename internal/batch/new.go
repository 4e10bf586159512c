package batch

import (
	"io"
	"sync"

	"github.com/nguyentantai21042004/textify/internal/capability"
	"github.com/nguyentantai21042004/textify/internal/config"
	"github.com/nguyentantai21042004/textify/internal/document"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/media"
	"github.com/nguyentantai21042004/textify/internal/monitor"
	"github.com/nguyentantai21042004/textify/internal/watcher"
)

// WatchFunc creates the watcher for a watch session.
type WatchFunc func(dir string, handler watcher.Handler) (watcher.Watcher, error)

// Deps wires a Runner.
type Deps struct {
	Config    *config.Config
	Flags     capability.Flags
	Logger    logger.Logger
	Media     media.Pipeline
	Loader    media.Loader
	Documents document.Pipeline
	Monitor   monitor.Monitor
	Watch     WatchFunc
	// NewLogFile requests the one-time system information block.
	NewLogFile bool
	// Out receives operator-facing messages.
	Out io.Writer
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

type implRunner struct {
	cfg       *config.Config
	flags     capability.Flags
	logger    logger.Logger
	media     media.Pipeline
	loader    media.Loader
	documents document.Pipeline
	monitor   monitor.Monitor
	watch     WatchFunc
	newLog    bool
	out       io.Writer
	progress  io.Writer

	device string

	modelMu sync.Mutex
	model   media.Model

	statsMu sync.Mutex
	stats   Stats
}

// New creates a Runner.
func New(d Deps) Runner {
	out := d.Out
	if out == nil {
		out = io.Discard
	}
	return &implRunner{
		cfg:       d.Config,
		flags:     d.Flags,
		logger:    d.Logger,
		media:     d.Media,
		loader:    d.Loader,
		documents: d.Documents,
		monitor:   d.Monitor,
		watch:     d.Watch,
		newLog:    d.NewLogFile,
		out:       out,
		progress:  d.Progress,
		device:    d.Config.Whisper.Device,
	}
}
