// Package exec launches tool executables and classifies how they ended.
//
// A tool is any executable that accepts one argument, a JSON object of its
// inputs, writes human-readable text to stdout/stderr and exits 0 on success.
package exec

import (
	"context"
	"errors"
	"time"
)

// ErrLaunch marks failures to start a process at all (permission denied,
// bad executable format, missing interpreter).
var ErrLaunch = errors.New("launch failed")

// Executor runs one tool process to completion.
type Executor interface {
	// Execute runs req and returns its exit code and captured output. A
	// non-zero exit is not an error. Errors wrap ErrLaunch when the process
	// could not be started, or ctx.Err() when it was killed.
	Execute(ctx context.Context, req Request) (Execution, error)

	// Name returns the executor type name for logging/debugging.
	Name() string
}

// Request describes a single tool invocation.
type Request struct {
	// Path is the executable to run.
	Path string

	// Input is passed to the tool as its only argument.
	Input []byte

	// Env is appended to the inherited environment (KEY=VALUE format).
	Env []string

	// WaitDelay bounds how long to wait for output after the process is killed.
	WaitDelay time.Duration
}

// Execution is what a finished process left behind.
type Execution struct {
	Stdout   string
	Stderr   string
	ExitCode int
}
