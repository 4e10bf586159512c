package files

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/textify/internal/logger"
)

// Source selects the inputs to scan. Callers set exactly one field.
type Source struct {
	Dir   string
	Files []string
}

// Eligible returns the inputs that have a supported extension and no marker.
// Directory mode follows listing order and skips silently; file-list mode
// keeps input order and logs why each input was dropped.
func Eligible(ctx context.Context, src Source, verbose bool, log logger.Logger) ([]string, error) {
	switch {
	case src.Dir != "":
		return eligibleInDir(src.Dir)
	case len(src.Files) > 0:
		return eligibleInList(ctx, src.Files, verbose, log), nil
	default:
		return nil, nil
	}
}

func eligibleInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var eligible []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		task := NewTask(filepath.Join(dir, e.Name()))
		if task.Category == CategoryUnsupported {
			continue
		}
		if exists(task.MarkerPath()) {
			continue
		}
		eligible = append(eligible, task.Path)
	}
	return eligible, nil
}

func eligibleInList(ctx context.Context, paths []string, verbose bool, log logger.Logger) []string {
	var eligible []string
	for _, path := range paths {
		if !exists(path) {
			log.Warn(ctx, "File not found: %s", path)
			continue
		}

		task := NewTask(path)
		if task.Category == CategoryUnsupported {
			// Our own outputs are skipped silently.
			if task.Ext == ".txt" {
				continue
			}
			if verbose {
				log.Warn(ctx, "Unsupported file type: %s", path)
			}
			continue
		}

		if exists(task.MarkerPath()) {
			log.Info(ctx, "Skipping %s - already processed", path)
			continue
		}
		eligible = append(eligible, path)
	}
	return eligible
}

// Categorize partitions files by extension. Unsupported paths are dropped.
func Categorize(paths []string) (audioVideo, documents []string) {
	audioVideo = []string{}
	documents = []string{}
	for _, path := range paths {
		switch NewTask(path).Category {
		case CategoryAudioVideo:
			audioVideo = append(audioVideo, path)
		case CategoryDocumentImage:
			documents = append(documents, path)
		}
	}
	return audioVideo, documents
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
