package document

import "context"

// Pipeline recognizes text in documents and images.
type Pipeline interface {
	// ExtractText never fails: an unavailable OCR engine yields "", any
	// other failure yields a string starting with ErrorPrefix.
	ExtractText(ctx context.Context, path string) string
	Process(ctx context.Context, files []string, opts Options) Result
}

// Options tunes a Process call.
type Options struct {
	// AfterEach is called once per attempted file.
	AfterEach func(path string)
}

// Result counts the files a Process call attempted. Failed files still get
// a marker holding the error text.
type Result struct {
	Processed int
	Failed    int
}
