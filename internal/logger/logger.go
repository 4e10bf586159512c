package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

type implLogger struct {
	logger *log.Logger
	level  string

	fileLogger *log.Logger
	fileLevel  string
	file       *os.File
	path       string
	created    bool
}

// New creates a new Logger instance
func New(level string) Logger {
	return NewWriter(level, os.Stdout)
}

// NewWriter creates a Logger writing to w
func NewWriter(level string, w io.Writer) Logger {
	return &implLogger{
		logger: log.New(w, "", log.LstdFlags),
		level:  strings.ToLower(level),
	}
}

// Options configures a logger with a file sink
type Options struct {
	ConsoleLevel string
	FileLevel    string
	// FilePath is a file, or an existing directory that receives a
	// host- and date-stamped file.
	FilePath string
	Console  io.Writer
}

// Open creates a Logger that writes to the console and appends to a log file
func Open(opts Options) (FileLogger, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	path := ResolvePath(opts.FilePath, hostname, time.Now())

	_, statErr := os.Stat(path)
	created := os.IsNotExist(statErr)

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	fileLevel := opts.FileLevel
	if fileLevel == "" {
		fileLevel = "info"
	}

	return &implLogger{
		logger:     log.New(console, "", log.LstdFlags),
		level:      strings.ToLower(opts.ConsoleLevel),
		fileLogger: log.New(f, "", log.LstdFlags),
		fileLevel:  strings.ToLower(fileLevel),
		file:       f,
		path:       path,
		created:    created,
	}, nil
}

// ResolvePath maps a --log-file value to the file that is written.
// A directory yields batch_process_{host}_{YYYYMMDD}.log inside it.
func ResolvePath(value, hostname string, now time.Time) string {
	if fi, err := os.Stat(value); err == nil && fi.IsDir() {
		return filepath.Join(value, fmt.Sprintf("batch_process_%s_%s.log", hostname, now.Format("20060102")))
	}
	return value
}

func (l *implLogger) Path() string  { return l.path }
func (l *implLogger) Created() bool { return l.created }

func (l *implLogger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.fileLogger = nil
	return err
}

func (l *implLogger) shouldLog(level string) bool {
	return enabled(l.level, level)
}

func enabled(threshold, level string) bool {
	currentLevel, ok := levels[threshold]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) write(ctx context.Context, level, tag, msg string, args ...interface{}) {
	toConsole := l.shouldLog(level)
	toFile := l.fileLogger != nil && enabled(l.fileLevel, level)
	if !toConsole && !toFile {
		return
	}

	line := fmt.Sprintf(tag+" "+msg, args...)
	if id := RunID(ctx); id != "" {
		line = "[" + shortID(id) + "] " + line
	}
	if toConsole {
		l.logger.Print(line)
	}
	if toFile {
		l.fileLogger.Print(line)
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, "debug", "[DEBUG]", msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, "info", "[INFO]", msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, "warn", "[WARN]", msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.write(ctx, "error", "[ERROR]", msg, args...)
}

type runIDKey struct{}

// WithRunID tags ctx with a batch run identifier
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunID returns the run identifier carried by ctx, if any
func RunID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
