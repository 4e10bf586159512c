package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDumpLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk_mp3_dump.txt")
	start := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)

	dump, err := CreateDump(path, MediaHeader(start, 125.5, 0))
	if err != nil {
		t.Fatalf("CreateDump() error = %v", err)
	}
	if err := dump.Append("hello world"); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := dump.AppendError(errors.New("boom")); err != nil {
		t.Fatalf("AppendError() error = %v", err)
	}
	if err := dump.Append(MediaFooter(start.Add(90*time.Second), 90*time.Second)); err != nil {
		t.Fatalf("Append(footer) error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := "Start: 2024-05-01 09:30:00\nDuration: 125.50s\nEstimated: 0.00 seconds\n\n--- Output ---\n\n" +
		"hello world" +
		"\nERROR: boom\n" +
		"\n\n--- Summary ---\nEnd: 2024-05-01 09:31:30\nActual: 1.50 minutes (90.00 seconds)\n"
	if string(data) != want {
		t.Errorf("dump content =\n%q\nwant\n%q", data, want)
	}
}

func TestCreateDumpTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan_pdf_dump.txt")
	if err := os.WriteFile(path, []byte("stale content from an earlier attempt"), 0644); err != nil {
		t.Fatal(err)
	}
	start := time.Date(2024, 5, 1, 9, 30, 0, 0, time.Local)
	if _, err := CreateDump(path, DocumentHeader(start)); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	want := "Start time: 2024-05-01 09:30:00\nDocument/image processing with OCR\n\n--- Processing Output ---\n\n"
	if string(data) != want {
		t.Errorf("header = %q, want %q", data, want)
	}
}

func TestDocumentFooter(t *testing.T) {
	end := time.Date(2024, 5, 1, 9, 30, 5, 0, time.Local)
	got := DocumentFooter(end, 2500*time.Millisecond)
	want := "\n\n--- Processing Summary ---\nEnd time: 2024-05-01 09:30:05\nActual processing time: 2.50 seconds\n"
	if got != want {
		t.Errorf("DocumentFooter() = %q, want %q", got, want)
	}
}

func TestWriteMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk_mp3.txt")
	if err := WriteMarker(path, "transcript"); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "transcript" {
		t.Errorf("marker = %q", data)
	}
	if err := WriteMarker(filepath.Join(t.TempDir(), "missing", "x.txt"), "x"); err == nil {
		t.Error("WriteMarker() into a missing dir should fail")
	}
}
