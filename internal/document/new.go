package document

import (
	"github.com/nguyentantai21042004/textify/internal/capability"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/ocr"
	"github.com/nguyentantai21042004/textify/internal/pdf"
)

type implPipeline struct {
	flags  capability.Flags
	reader ocr.Reader
	opener pdf.Opener
	logger logger.Logger
}

// New creates the document Pipeline. reader and opener are only used when
// flags report OCR and PDF rendering as available.
func New(flags capability.Flags, reader ocr.Reader, opener pdf.Opener, log logger.Logger) Pipeline {
	return &implPipeline{
		flags:  flags,
		reader: reader,
		opener: opener,
		logger: log,
	}
}
