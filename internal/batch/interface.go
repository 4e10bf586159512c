package batch

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/textify/internal/monitor"
	"github.com/nguyentantai21042004/textify/internal/watcher"
)

// Runner drives one textify session: the initial batch and, when
// requested, the watch session that follows it.
type Runner interface {
	Run(ctx context.Context) (Stats, error)
	// HandleEvent processes one stabilized watch event.
	HandleEvent(ctx context.Context, ev watcher.Event)
}

// Stats describes a finished session.
type Stats struct {
	Eligible    int
	AudioVideo  int
	Documents   int
	Transcribed int
	Recognized  int
	Failed      int
	Elapsed     time.Duration
	Resources   monitor.Summary
}
