package display

import (
	"fmt"
	"time"
)

// FormatSeconds renders a duration in seconds with the largest fitting unit,
// keeping the raw seconds alongside anything above a minute.
func FormatSeconds(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.2f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.2f minutes (%.2f seconds)", seconds/60, seconds)
	case seconds < 86400:
		return fmt.Sprintf("%.2f hours (%.2f seconds)", seconds/3600, seconds)
	default:
		return fmt.Sprintf("%.2f days (%.2f seconds)", seconds/86400, seconds)
	}
}

// FormatDuration is FormatSeconds for a time.Duration.
func FormatDuration(d time.Duration) string {
	return FormatSeconds(d.Seconds())
}

// Timestamp renders t as YYYY-MM-DD HH:MM:SS.
func Timestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
