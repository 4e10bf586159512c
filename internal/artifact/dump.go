// Package artifact writes the two per-input files a pipeline leaves behind:
// the marker/output text and the human-readable dump record.
package artifact

import (
	"fmt"
	"os"
)

// Dump is an append-only audit trail for one input. Every write opens and
// closes the file so a crash leaves whatever was recorded so far.
type Dump struct {
	path string
}

// CreateDump truncates path and writes the header block.
func CreateDump(path, header string) (*Dump, error) {
	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		return nil, fmt.Errorf("write dump header: %w", err)
	}
	return &Dump{path: path}, nil
}

func (d *Dump) Path() string { return d.path }

// Append adds raw text to the body.
func (d *Dump) Append(text string) error {
	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open dump: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("append dump: %w", err)
	}
	return f.Close()
}

// AppendError records a processing failure in the body.
func (d *Dump) AppendError(cause error) error {
	return d.Append(fmt.Sprintf("\nERROR: %v\n", cause))
}

// WriteMarker writes the extracted text to the marker/output path.
func WriteMarker(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}
