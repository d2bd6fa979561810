package exec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"toolkit/pkg/config"
	"toolkit/pkg/logx"
	"toolkit/pkg/registry"
	"toolkit/pkg/scripts"
)

// ReasonPlaceholderCreated is the LaunchFailed reason reported when a missing
// script was replaced by a placeholder.
const ReasonPlaceholderCreated = "script missing, placeholder created"

// Outcome classifies how a run ended.
type Outcome int

const (
	Success Outcome = iota
	NonZeroExit
	TimedOut
	LaunchFailed
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case NonZeroExit:
		return "non_zero_exit"
	case TimedOut:
		return "timed_out"
	case LaunchFailed:
		return "launch_failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Script identifies the executable behind a tool.
type Script struct {
	Ref         string
	Name        string
	Description string
}

// ScriptFor returns the script of a registry tool.
func ScriptFor(tool registry.ToolSpec) Script {
	return Script{Ref: tool.Script, Name: tool.Name, Description: tool.Description}
}

// RunResult is the record of one run.
type RunResult struct {
	RunID      string
	ScriptPath string
	Outcome    Outcome
	ExitCode   int
	Stdout     string
	Stderr     string
	Duration   time.Duration

	// Reason explains TimedOut and LaunchFailed outcomes.
	Reason string

	// PlaceholderCreated is set when the script was missing and a
	// placeholder now stands in its place. The run itself did not happen.
	PlaceholderCreated bool
}

// Materializer creates a stand-in executable for a missing script.
type Materializer interface {
	Materialize(path, name, description string) error
}

// Runner resolves scripts, launches them through an Executor and turns
// every ending, including failures to start, into a RunResult.
type Runner struct {
	toolsDir     string
	executor     Executor
	materializer Materializer
	killGrace    time.Duration
	logger       *logx.Logger
	launches     atomic.Int64
}

// NewRunner creates a runner resolving script references under toolsDir.
// materializer may be nil, in which case missing scripts are only reported.
func NewRunner(toolsDir string, executor Executor, materializer Materializer) *Runner {
	return &Runner{
		toolsDir:     toolsDir,
		executor:     executor,
		materializer: materializer,
		killGrace:    config.KillGrace,
		logger:       logx.NewLogger("runner"),
	}
}

// Launches returns how many processes this runner has started.
func (r *Runner) Launches() int64 {
	return r.launches.Load()
}

// Run executes script with inputs as its JSON argument and waits for it,
// for at most timeout (config.DefaultTimeout when timeout <= 0). The
// deadline is the only thing that stops a running tool: cancelling ctx does
// not preempt it.
func (r *Runner) Run(ctx context.Context, script Script, inputs *registry.InputMap, timeout time.Duration) RunResult {
	result := RunResult{
		RunID:      uuid.NewString(),
		ScriptPath: scripts.Resolve(r.toolsDir, script.Ref),
	}

	if !scripts.Exists(result.ScriptPath) {
		return r.handleMissing(script, result)
	}

	payload := []byte("{}")
	if inputs != nil {
		var err error
		payload, err = json.Marshal(inputs)
		if err != nil {
			result.Outcome = LaunchFailed
			result.ExitCode = -1
			result.Reason = fmt.Sprintf("failed to encode inputs: %v", err)
			return result
		}
	}

	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	r.logger.Info("🚀 Launching %s (run %s, timeout %s)", result.ScriptPath, result.RunID, timeout)
	r.logger.Debug("Input for run %s: %s", result.RunID, payload)

	r.launches.Add(1)
	start := time.Now()
	execution, err := r.executor.Execute(runCtx, Request{
		Path:      result.ScriptPath,
		Input:     payload,
		Env:       []string{config.EnvRunID + "=" + result.RunID},
		WaitDelay: r.killGrace,
	})
	result.Duration = time.Since(start)
	result.ExitCode = execution.ExitCode

	switch {
	case err == nil && execution.ExitCode == 0:
		result.Outcome = Success
		result.Stdout = execution.Stdout
		result.Stderr = execution.Stderr
	case err == nil:
		result.Outcome = NonZeroExit
		result.Stdout = execution.Stdout
		result.Stderr = execution.Stderr
	case errors.Is(err, context.DeadlineExceeded):
		result.Outcome = TimedOut
		result.ExitCode = -1
		result.Reason = fmt.Sprintf("timed out after %s", timeout)
	default:
		result.Outcome = LaunchFailed
		result.ExitCode = -1
		result.Reason = err.Error()
	}

	r.logger.Info("Run %s finished: %s (exit %d) in %s", result.RunID, result.Outcome, result.ExitCode, result.Duration.Round(time.Millisecond))
	return result
}

func (r *Runner) handleMissing(script Script, result RunResult) RunResult {
	result.Outcome = LaunchFailed
	result.ExitCode = -1
	r.logger.Warn("⚠️  Script not found: %s", result.ScriptPath)

	if r.materializer == nil {
		result.Reason = "script missing: " + result.ScriptPath
		return result
	}
	if err := r.materializer.Materialize(result.ScriptPath, script.Name, script.Description); err != nil {
		result.Reason = fmt.Sprintf("script missing, placeholder creation failed: %v", err)
		return result
	}

	result.Reason = ReasonPlaceholderCreated
	result.PlaceholderCreated = true
	return result
}
