// Package document extracts text from PDFs and images, preferring a PDF's
// own text layer and falling back to OCR page by page.
package document

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/textify/internal/artifact"
	"github.com/nguyentantai21042004/textify/internal/display"
	"github.com/nguyentantai21042004/textify/internal/files"
	"github.com/nguyentantai21042004/textify/internal/ocr"
)

// ErrorPrefix starts the text returned for a failed extraction.
const ErrorPrefix = "ERROR during OCR processing:"

func (p *implPipeline) ExtractText(ctx context.Context, path string) string {
	if !p.flags.OCR {
		p.logger.Warn(ctx, "OCR engine not available. Cannot process document.")
		return ""
	}

	text, err := p.extract(ctx, path)
	if err != nil {
		p.logger.Error(ctx, "Error during OCR processing: %v", err)
		return fmt.Sprintf("%s %v", ErrorPrefix, err)
	}
	return text
}

func (p *implPipeline) extract(ctx context.Context, path string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%v", rec)
		}
	}()

	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		p.logger.Info(ctx, "Processing image file: %s", path)
		return p.recognize(ctx, ocr.Source{Path: path})
	}

	p.logger.Info(ctx, "Processing PDF file: %s", path)
	doc, err := p.opener.Open(path)
	if err != nil {
		if p.flags.PDFRender {
			return "", err
		}
		p.logger.Warn(ctx, "Cannot read PDF text layer (%v), using OCR only for %s.", err, path)
		return p.recognize(ctx, ocr.Source{Path: path})
	}
	defer doc.Close()

	sections := make([]string, 0, doc.PageCount())
	for i := 0; i < doc.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.PageText(i)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			sections = append(sections, fmt.Sprintf("--- Page %d (direct text) ---\n%s\n", i+1, text))
			continue
		}

		if !p.flags.PDFRender {
			p.logger.Warn(ctx, "PDF renderer not available. Skipping OCR of page %d.", i+1)
			continue
		}
		p.logger.Info(ctx, "No direct text found on page %d, using OCR", i+1)
		img, err := doc.RenderPage(ctx, i)
		if err != nil {
			return "", err
		}
		text, err = p.recognize(ctx, ocr.Source{Image: img})
		if err != nil {
			return "", err
		}
		sections = append(sections, fmt.Sprintf("--- Page %d (OCR) ---\n%s\n", i+1, text))
	}
	return strings.Join(sections, "\n"), nil
}

func (p *implPipeline) recognize(ctx context.Context, src ocr.Source) (string, error) {
	lines, err := p.reader.ReadText(ctx, src)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// Process runs ExtractText for each file in order and writes its dump and
// marker. Cancellation stops before the next file.
func (p *implPipeline) Process(ctx context.Context, paths []string, opts Options) Result {
	var res Result
	if len(paths) == 0 {
		p.logger.Info(ctx, "No document/image files to process.")
		return res
	}
	p.logger.Info(ctx, "Processing %d document/image files with OCR", len(paths))

	for i, path := range paths {
		if ctx.Err() != nil {
			p.logger.Warn(ctx, "Interrupted, %d document/image files left unprocessed", len(paths)-i)
			break
		}

		if p.processFile(ctx, path) {
			res.Processed++
		} else {
			res.Failed++
		}
		if opts.AfterEach != nil {
			opts.AfterEach(path)
		}
	}
	return res
}

func (p *implPipeline) processFile(ctx context.Context, path string) bool {
	task := files.NewTask(path)
	name := filepath.Base(path)
	p.logger.Info(ctx, "Starting OCR processing of %s.", name)

	start := time.Now()
	dump, err := artifact.CreateDump(task.DumpPath(), artifact.DocumentHeader(start))
	if err != nil {
		p.logger.Error(ctx, "Error processing %s: %v", name, err)
		return false
	}

	text := p.ExtractText(ctx, path)
	ok := !strings.HasPrefix(text, ErrorPrefix)

	err = dump.Append(text)
	if err == nil {
		err = artifact.WriteMarker(task.MarkerPath(), text)
	}
	if err != nil {
		ok = false
		p.logger.Error(ctx, "Error processing %s: %v", name, err)
		if werr := dump.AppendError(err); werr != nil {
			p.logger.Warn(ctx, "Could not record error for %s: %v", name, werr)
		}
	}

	elapsed := time.Since(start)
	if werr := dump.Append(artifact.DocumentFooter(time.Now(), elapsed)); werr != nil {
		p.logger.Warn(ctx, "Could not finish dump for %s: %v", name, werr)
	}
	p.logger.Info(ctx, "Processing time for %s: %s", name, display.FormatDuration(elapsed))
	return ok
}
