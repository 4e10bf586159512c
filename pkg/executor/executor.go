package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotFound is returned when a command cannot be resolved on PATH.
var ErrNotFound = errors.New("executable not found")

// ExitError is returned when a command ran but exited non-zero.
type ExitError struct {
	Name   string
	Code   int
	Stderr string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("command '%s' failed: %v\nstderr: %s", e.Name, e.Err, e.Stderr)
	}
	return fmt.Sprintf("command '%s' failed: %v", e.Name, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	out, err := e.run(ctx, nil, name, args...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// ExecuteInput runs an external command feeding input on stdin and returns raw stdout
func (e *implExecutor) ExecuteInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	return e.run(ctx, input, name, args...)
}

func (e *implExecutor) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return path, nil
}

func (e *implExecutor) run(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if input != nil {
		cmd.Stdin = bytes.NewReader(input)
	}

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		// Include stderr in error message for debugging
		exitErr := &ExitError{Name: name, Code: -1, Stderr: strings.TrimSpace(stderr.String()), Err: err}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			exitErr.Code = ee.ExitCode()
		}
		return nil, exitErr
	}

	return stdout.Bytes(), nil
}
