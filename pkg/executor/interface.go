package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// ExecuteInput runs the command with input written to its stdin.
	ExecuteInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error)
	// LookPath resolves name against PATH.
	LookPath(name string) (string, error)
}
