package watcher

import "context"

// Watcher delivers filesystem events for one directory.
type Watcher interface {
	// Start blocks, dispatching events until ctx is done.
	Start(ctx context.Context) error
	Stop() error
}

// Kind is the type of a filesystem notification.
type Kind int

const (
	Created Kind = iota + 1
	Modified
	Moved
	// Closed means a writer closed the file. Stability waiting is skipped.
	// fsnotify does not report close-write, so only other sources send it.
	Closed
)

func (k Kind) String() string {
	switch k {
	case Created:
		return "created"
	case Modified:
		return "modified"
	case Moved:
		return "moved"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is one notification for a regular file.
type Event struct {
	Kind Kind
	Path string
}

// Handler reacts to a file that has stopped growing. It runs on the
// watcher's goroutine, one event at a time.
type Handler func(ctx context.Context, ev Event)
