package logger

import "context"

// Logger is the leveled, printf-style logger shared by every component
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}

// FileLogger is a Logger that also appends to a log file
type FileLogger interface {
	Logger
	// Path is the resolved log file path.
	Path() string
	// Created reports whether the file did not exist before Open.
	Created() bool
	Close() error
}
