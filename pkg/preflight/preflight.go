// Package preflight validates the toolkit environment before the menu
// starts: the tools directory, the shell used by placeholder scripts, and
// the install state of every registered tool.
package preflight

import (
	"context"
	"fmt"

	"toolkit/pkg/config"
	"toolkit/pkg/registry"
)

// Check names the thing a result is about.
type Check string

// Fixed checks. Per-tool checks are named "script:<ref>".
const (
	CheckToolsDir Check = "tools_dir"
	CheckShell    Check = "shell"
)

func scriptCheck(ref string) Check {
	return Check("script:" + ref)
}

// CheckResult represents the outcome of a single preflight check.
type CheckResult struct {
	Error   error
	Message string
	Check   Check
	Passed  bool
}

// Results contains all preflight check results.
type Results struct {
	Summary string
	Checks  []CheckResult
	Passed  bool
}

// Failed returns the checks that did not pass.
func (r *Results) Failed() []CheckResult {
	var failed []CheckResult
	for i := range r.Checks {
		if !r.Checks[i].Passed {
			failed = append(failed, r.Checks[i])
		}
	}
	return failed
}

// Run executes all preflight checks.
func Run(ctx context.Context, cfg config.Config, reg *registry.Registry) *Results {
	checks := []CheckResult{
		checkToolsDir(cfg.ToolsDir),
		checkShell(ctx),
	}
	for _, tool := range reg.List() {
		checks = append(checks, checkScript(cfg.ToolsDir, tool))
	}

	results := &Results{Checks: checks, Passed: true}
	failed := len(results.Failed())
	if failed > 0 {
		results.Passed = false
		results.Summary = fmt.Sprintf("%d of %d preflight checks failed", failed, len(checks))
	} else {
		results.Summary = fmt.Sprintf("All %d preflight checks passed", len(checks))
	}
	return results
}
