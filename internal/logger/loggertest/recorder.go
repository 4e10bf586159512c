// Package loggertest provides a Logger that records entries for assertions.
package loggertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/textify/internal/logger"
)

// Entry is one recorded log line.
type Entry struct {
	Level   string
	Message string
}

// Recorder implements logger.Logger by keeping every formatted line.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ logger.Logger = (*Recorder)(nil)

func (r *Recorder) record(level, msg string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: fmt.Sprintf(msg, args...)})
}

func (r *Recorder) Debug(_ context.Context, msg string, args ...interface{}) {
	r.record("debug", msg, args...)
}

func (r *Recorder) Info(_ context.Context, msg string, args ...interface{}) {
	r.record("info", msg, args...)
}

func (r *Recorder) Warn(_ context.Context, msg string, args ...interface{}) {
	r.record("warn", msg, args...)
}

func (r *Recorder) Error(_ context.Context, msg string, args ...interface{}) {
	r.record("error", msg, args...)
}

// Entries returns a snapshot of everything logged so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Level returns the messages logged at level.
func (r *Recorder) Level(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether some message at level contains substr.
func (r *Recorder) Contains(level, substr string) bool {
	for _, m := range r.Level(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
