// Package ocr recognizes text in images with the tesseract CLI.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// DefaultLanguages are the tesseract language packs used for every input.
var DefaultLanguages = []string{"eng", "jpn"}

// Source is one image to recognize, either a file path or encoded image bytes.
type Source struct {
	Path  string
	Image []byte
}

// Reader returns the recognized text lines of an image.
type Reader interface {
	ReadText(ctx context.Context, src Source) ([]string, error)
}

type implReader struct {
	exec      executor.Executor
	binary    string
	languages string
}

// New creates a Reader for the given tesseract binary and language packs.
func New(exec executor.Executor, binary string, languages []string) Reader {
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &implReader{
		exec:      exec,
		binary:    binary,
		languages: strings.Join(languages, "+"),
	}
}

func (r *implReader) ReadText(ctx context.Context, src Source) ([]string, error) {
	var (
		out []byte
		err error
	)
	switch {
	case len(src.Image) > 0:
		out, err = r.exec.ExecuteInput(ctx, src.Image, r.binary, "stdin", "stdout", "-l", r.languages)
	case src.Path != "":
		var s string
		s, err = r.exec.Execute(ctx, r.binary, src.Path, "stdout", "-l", r.languages)
		out = []byte(s)
	default:
		return nil, errors.New("ocr: empty source")
	}
	if err != nil {
		return nil, fmt.Errorf("tesseract: %w", err)
	}
	return lines(string(out)), nil
}

func lines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
