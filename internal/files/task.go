// Package files decides which inputs need processing and which pipeline
// handles them. The only persisted state is the marker file a pipeline
// writes next to each input.
package files

import (
	"path/filepath"
	"strings"
)

// Category is the pipeline an input belongs to.
type Category string

const (
	CategoryAudioVideo    Category = "audio_video"
	CategoryDocumentImage Category = "document_image"
	CategoryUnsupported   Category = "unsupported"
)

var audioVideoExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".aac": true, ".flac": true, ".ogg": true, ".m4a": true, ".wma": true,
	".mp4": true, ".mov": true, ".avi": true, ".wmv": true, ".flv": true, ".mkv": true, ".webm": true,
	".m4v": true, ".mpg": true, ".mpeg": true, ".3gp": true, ".3g2": true, ".rm": true, ".rmvb": true,
	".vob": true, ".ts": true, ".ogv": true, ".f4v": true, ".divx": true,
}

var documentImageExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tiff": true, ".tif": true,
	".webp": true, ".gif": true, ".heic": true, ".heif": true,
}

// Task is a transient view of one input path.
type Task struct {
	Path string
	// Ext is the lower-cased extension including the dot.
	Ext      string
	Category Category
}

// NewTask derives the task attributes from path.
func NewTask(path string) Task {
	ext := strings.ToLower(filepath.Ext(path))
	return Task{Path: path, Ext: ext, Category: CategoryOf(ext)}
}

// CategoryOf maps a lower-cased dot-extension to its category.
func CategoryOf(ext string) Category {
	switch {
	case audioVideoExtensions[ext]:
		return CategoryAudioVideo
	case documentImageExtensions[ext]:
		return CategoryDocumentImage
	default:
		return CategoryUnsupported
	}
}

// Supported reports whether ext belongs to either pipeline.
func Supported(ext string) bool {
	return CategoryOf(ext) != CategoryUnsupported
}

// MarkerPath is {dir}/{base}_{ext}.txt. Its existence means "already processed".
func (t Task) MarkerPath() string {
	return t.derived(".txt")
}

// DumpPath is {dir}/{base}_{ext}_dump.txt, the per-file audit trail.
func (t Task) DumpPath() string {
	return t.derived("_dump.txt")
}

func (t Task) derived(suffix string) string {
	dir := filepath.Dir(t.Path)
	name := filepath.Base(t.Path)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return filepath.Join(dir, base+"_"+strings.TrimPrefix(t.Ext, ".")+suffix)
}
