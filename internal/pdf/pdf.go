// Package pdf reads the text layer of PDF pages and rasterizes pages that
// have none.
package pdf

import (
	"context"
	"fmt"
	"os"
	"strconv"

	lpdf "github.com/ledongthuc/pdf"

	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// Document is an open PDF. Page indexes start at 0.
type Document interface {
	PageCount() int
	// PageText returns the embedded text of page i, empty for scanned pages.
	PageText(i int) (string, error)
	// RenderPage rasterizes page i to PNG.
	RenderPage(ctx context.Context, i int) ([]byte, error)
	Close() error
}

// Opener opens PDF documents.
type Opener interface {
	Open(path string) (Document, error)
}

type implOpener struct {
	exec   executor.Executor
	binary string
	dpi    int
}

// NewOpener creates an Opener that renders with the pdftoppm binary.
func NewOpener(exec executor.Executor, renderBinary string, dpi int) Opener {
	return &implOpener{exec: exec, binary: renderBinary, dpi: dpi}
}

// Open reads the cross-reference table and counts the pages up front, so a
// broken file fails here rather than part way through.
func (o *implOpener) Open(path string) (doc Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("malformed PDF: %v", rec)
		}
		if err != nil {
			f.Close()
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	r, err := lpdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &implDocument{
		path:   path,
		file:   f,
		reader: r,
		pages:  r.NumPage(),
		opener: o,
	}, nil
}

type implDocument struct {
	path   string
	file   *os.File
	reader *lpdf.Reader
	pages  int
	opener *implOpener
}

func (d *implDocument) PageCount() int {
	return d.pages
}

// PageText reports a panic in the PDF reader as an error.
func (d *implDocument) PageText(i int) (text string, err error) {
	if i < 0 || i >= d.pages {
		return "", fmt.Errorf("page %d out of range", i+1)
	}
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("malformed PDF page %d: %v", i+1, rec)
		}
	}()

	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", i+1, err)
	}
	return text, nil
}

func (d *implDocument) RenderPage(ctx context.Context, i int) ([]byte, error) {
	n := strconv.Itoa(i + 1)
	// Without an output root pdftoppm writes the image to stdout.
	out, err := d.opener.exec.ExecuteInput(ctx, nil, d.opener.binary,
		"-f", n, "-l", n,
		"-png",
		"-r", strconv.Itoa(d.opener.dpi),
		d.path,
	)
	if err != nil {
		return nil, fmt.Errorf("render page %s: %w", n, err)
	}
	return out, nil
}

func (d *implDocument) Close() error {
	return d.file.Close()
}
