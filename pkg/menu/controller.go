// Package menu drives the interactive select, configure, confirm and run
// cycle of the toolkit.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"toolkit/pkg/config"
	"toolkit/pkg/exec"
	"toolkit/pkg/logx"
	"toolkit/pkg/prompt"
	"toolkit/pkg/registry"
)

// State is a step of the menu cycle.
type State int

// Menu states. Exiting is terminal.
const (
	ShowingMenu State = iota
	AwaitingSelection
	CollectingInputs
	ConfirmingRun
	Executing
	ShowingResult
	Exiting
)

func (s State) String() string {
	switch s {
	case ShowingMenu:
		return "SHOWING_MENU"
	case AwaitingSelection:
		return "AWAITING_SELECTION"
	case CollectingInputs:
		return "COLLECTING_INPUTS"
	case ConfirmingRun:
		return "CONFIRMING_RUN"
	case Executing:
		return "EXECUTING"
	case ShowingResult:
		return "SHOWING_RESULT"
	case Exiting:
		return "EXITING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ToolRunner launches the script behind a tool. *exec.Runner satisfies it.
type ToolRunner interface {
	Run(ctx context.Context, script exec.Script, inputs *registry.InputMap, timeout time.Duration) exec.RunResult
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets the per-run timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithErrorPause sets how long selection errors stay on screen.
func WithErrorPause(d time.Duration) Option {
	return func(c *Controller) { c.pause = d }
}

// WithScreen replaces the screen clearer.
func WithScreen(s Screen) Option {
	return func(c *Controller) { c.screen = s }
}

// Controller owns the menu loop. It is not safe for concurrent use.
type Controller struct {
	registry  *registry.Registry
	console   *prompt.Console
	collector *prompt.Collector
	runner    ToolRunner
	screen    Screen
	logger    *logx.Logger

	timeout time.Duration
	pause   time.Duration
	state   State
}

// NewController creates a controller over reg that talks through console
// and launches tools with runner.
func NewController(reg *registry.Registry, console *prompt.Console, runner ToolRunner, opts ...Option) *Controller {
	c := &Controller{
		registry:  reg,
		console:   console,
		collector: prompt.NewCollector(console),
		runner:    runner,
		screen:    TerminalScreen{},
		logger:    logx.NewLogger("menu"),
		timeout:   config.DefaultTimeout,
		pause:     config.ErrorPause,
		state:     ShowingMenu,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) transition(next State) {
	c.logger.DebugState("transition", next.String(), "from "+c.state.String())
	c.state = next
}

// Run loops until the user picks Exit, input ends, or ctx is cancelled
// while a prompt is waiting. Those are normal exits and return nil; only a
// failing input stream is reported as an error.
func (c *Controller) Run(ctx context.Context) error {
	for {
		c.transition(ShowingMenu)
		c.showMenu()

		c.transition(AwaitingSelection)
		raw, err := c.console.Ask(ctx, fmt.Sprintf("\n🎯 Select a tool (0-%d): ", c.registry.MaxID()))
		if err != nil {
			return c.exit(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			c.console.Println("❌ Please enter a valid number!")
			c.wait(ctx)
			continue
		}
		if choice == 0 {
			c.console.Println("\n👋 Thanks for using the Automation Toolkit!")
			c.console.Println("🚀 Keep automating and stay productive!")
			c.transition(Exiting)
			return nil
		}

		tool, err := c.registry.Lookup(choice)
		if err != nil {
			c.logger.Debug("selection %d rejected: %v", choice, err)
			c.console.Printf("❌ Invalid selection! Please choose 0-%d.\n", c.registry.MaxID())
			c.wait(ctx)
			continue
		}

		if err := c.runTool(ctx, tool); err != nil {
			return c.exit(err)
		}
		if _, err := c.console.Ask(ctx, "\n⏎ Press Enter to continue..."); err != nil {
			return c.exit(err)
		}
	}
}

func (c *Controller) runTool(ctx context.Context, tool registry.ToolSpec) error {
	c.showSelected(tool)

	c.transition(CollectingInputs)
	inputs, err := c.collector.CollectTool(ctx, tool)
	if err != nil {
		return err
	}

	c.transition(ConfirmingRun)
	c.showSummary(inputs)
	answer, err := c.console.Ask(ctx, "\n🤔 Execute with these settings? (y/n): ")
	if err != nil {
		return err
	}
	if !confirmed(answer) {
		c.console.Println("❌ Execution cancelled.")
		c.logger.Info("run of %s declined", tool.Name)
		return nil
	}
	if err := tool.Check(inputs); err != nil {
		c.logger.Error("inputs for %s rejected: %v", tool.Name, err)
		c.console.Printf("❌ %v\n", err)
		return nil
	}

	c.transition(Executing)
	c.console.Printf("\n🚀 Executing: %s\n", tool.Name)
	c.console.Println(rule("-", 60))
	result := c.runner.Run(ctx, exec.ScriptFor(tool), inputs, c.timeout)
	c.logger.Info("run %s of %s finished: %s in %s", result.RunID, tool.Name, result.Outcome, result.Duration)

	c.transition(ShowingResult)
	c.showResult(tool, result)
	return nil
}

func (c *Controller) exit(err error) error {
	c.transition(Exiting)
	switch {
	case errors.Is(err, prompt.ErrInterrupted), errors.Is(err, io.EOF):
		c.console.Println("\n\n👋 Goodbye!")
		return nil
	default:
		c.logger.Error("menu stopped: %v", err)
		return err
	}
}

// wait keeps an error message on screen. Cancellation cuts it short; the
// next prompt then observes the cancelled context.
func (c *Controller) wait(ctx context.Context) {
	if c.pause <= 0 {
		return
	}
	timer := time.NewTimer(c.pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
