package artifact

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/textify/internal/display"
)

// MediaHeader opens an audio/video dump record.
func MediaHeader(start time.Time, durationSec, estimateSec float64) string {
	return fmt.Sprintf("Start: %s\nDuration: %.2fs\nEstimated: %s\n\n--- Output ---\n\n",
		display.Timestamp(start), durationSec, display.FormatSeconds(estimateSec))
}

// MediaFooter closes an audio/video dump record.
func MediaFooter(end time.Time, elapsed time.Duration) string {
	return fmt.Sprintf("\n\n--- Summary ---\nEnd: %s\nActual: %s\n",
		display.Timestamp(end), display.FormatDuration(elapsed))
}

// DocumentHeader opens a document/image dump record.
func DocumentHeader(start time.Time) string {
	return fmt.Sprintf("Start time: %s\nDocument/image processing with OCR\n\n--- Processing Output ---\n\n",
		display.Timestamp(start))
}

// DocumentFooter closes a document/image dump record.
func DocumentFooter(end time.Time, elapsed time.Duration) string {
	return fmt.Sprintf("\n\n--- Processing Summary ---\nEnd time: %s\nActual processing time: %s\n",
		display.Timestamp(end), display.FormatDuration(elapsed))
}
