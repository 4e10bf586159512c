// Package executortest provides a scripted executor.Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/textify/pkg/executor"
)

// Call records one command invocation.
type Call struct {
	Name  string
	Args  []string
	Input []byte
}

// Reply is what a scripted command returns.
type Reply struct {
	Stdout []byte
	Err    error
}

// Fake answers commands from a handler and records every call.
type Fake struct {
	mu sync.Mutex

	// Handle produces the reply for a call. A nil Handle returns empty output.
	Handle func(call Call) Reply
	// Paths lists the binaries LookPath resolves.
	Paths map[string]bool

	calls []Call
}

var _ executor.Executor = (*Fake)(nil)

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	out, err := f.ExecuteInput(ctx, nil, name, args...)
	return string(out), err
}

func (f *Fake) ExecuteInput(ctx context.Context, input []byte, name string, args ...string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...), Input: input}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	handle := f.Handle
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if handle == nil {
		return nil, nil
	}
	reply := handle(call)
	return reply.Stdout, reply.Err
}

func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Paths[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("%s: %w", name, executor.ErrNotFound)
}

// Calls returns a snapshot of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallsTo returns the recorded calls to the named binary.
func (f *Fake) CallsTo(name string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// ArgAfter returns the argument following flag, or "" when absent.
func (c Call) ArgAfter(flag string) string {
	for i, a := range c.Args {
		if a == flag && i+1 < len(c.Args) {
			return c.Args[i+1]
		}
	}
	return ""
}

// HasArg reports whether arg appears in the call.
func (c Call) HasArg(arg string) bool {
	for _, a := range c.Args {
		if a == arg {
			return true
		}
	}
	return false
}

func (c Call) String() string {
	return c.Name + " " + strings.Join(c.Args, " ")
}
