// Package watcher turns fsnotify notifications for a directory into
// stabilized file events.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/textify/internal/files"
	"github.com/nguyentantai21042004/textify/internal/logger"
)

type implWatcher struct {
	dir     string
	handler Handler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	opts    Options
}

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching %s for new files", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if ev, ok := translate(event); ok {
				w.dispatch(ctx, ev)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// translate maps an fsnotify operation to an Event. Remove and chmod carry
// nothing to process.
func translate(event fsnotify.Event) (Event, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return Event{Kind: Created, Path: event.Name}, true
	case event.Has(fsnotify.Write):
		return Event{Kind: Modified, Path: event.Name}, true
	case event.Has(fsnotify.Rename):
		return Event{Kind: Moved, Path: event.Name}, true
	default:
		return Event{}, false
	}
}

// dispatch drops directories and unsupported files, waits for the file to settle and runs the handler.
func (w *implWatcher) dispatch(ctx context.Context, ev Event) {
	info, err := os.Stat(ev.Path)
	switch {
	case err != nil && ev.Kind == Moved:
		// fsnotify reports the old name of a rename; the new one arrives as Create.
		w.logger.Debug(ctx, "Ignoring %s event for missing %s", ev.Kind, ev.Path)
		return
	case err == nil && info.IsDir():
		return
	case !files.Supported(strings.ToLower(filepath.Ext(ev.Path))):
		// Includes the markers and dumps written next to each input.
		return
	}

	w.logger.Debug(ctx, "File %s: %s", ev.Kind, ev.Path)
	if ev.Kind != Closed {
		stable, err := WaitStable(ctx, ev.Path, w.opts.StableTimeout, w.opts.PollInterval)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		if !stable {
			w.logger.Debug(ctx, "%s still changing after %s, processing anyway", ev.Path, w.opts.StableTimeout)
		}
	}
	w.handler(ctx, ev)
}
