package watcher

import (
	"context"
	"os"
	"time"
)

// WaitStable polls the size of path every interval until two consecutive
// readings are equal and non-zero, or timeout elapses. An unreadable path
// reads as -1. It reports whether the file settled and returns ctx.Err()
// when cancelled.
func WaitStable(ctx context.Context, path string, timeout, interval time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	last := int64(-1)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		size := int64(-1)
		if info, err := os.Stat(path); err == nil {
			size = info.Size()
		}
		if size == last && size > 0 {
			return true, nil
		}
		last = size

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
	return false, nil
}
