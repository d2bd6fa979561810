package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// LocalExec runs tools directly on the local system.
type LocalExec struct{}

// NewLocalExec creates a new LocalExec executor.
func NewLocalExec() *LocalExec {
	return &LocalExec{}
}

// Name returns the executor type name.
func (e *LocalExec) Name() string {
	return "local"
}

// Execute starts req.Path with req.Input as its single argument, stdin
// attached to the null device. When ctx ends the whole process group is
// killed.
func (e *LocalExec) Execute(ctx context.Context, req Request) (Execution, error) {
	if req.Path == "" {
		return Execution{ExitCode: -1}, fmt.Errorf("%w: empty executable path", ErrLaunch)
	}

	cmd := exec.CommandContext(ctx, req.Path, string(req.Input))
	if len(req.Env) > 0 {
		cmd.Env = append(os.Environ(), req.Env...)
	}
	cmd.WaitDelay = req.WaitDelay
	configureProcessGroup(cmd)

	var stdoutBuf, stderrBuf strings.Builder
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	result := Execution{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err == nil {
		return result, nil
	}

	// A killed process also reports an ExitError, so check the context first.
	if ctxErr := ctx.Err(); ctxErr != nil && cmd.ProcessState != nil {
		return Execution{ExitCode: -1}, ctxErr
	}

	// The tool exited but a background child kept its output open past
	// WaitDelay. The exit status is still the tool's own.
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	// Command failed to start.
	result.ExitCode = -1
	return result, fmt.Errorf("%w: %v", ErrLaunch, err)
}
