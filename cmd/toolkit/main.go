package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"toolkit/pkg/config"
	"toolkit/pkg/exec"
	"toolkit/pkg/logx"
	"toolkit/pkg/menu"
	"toolkit/pkg/preflight"
	"toolkit/pkg/prompt"
	"toolkit/pkg/registry"
	"toolkit/pkg/scripts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the menu, so log lines go to a file.
	if err := logx.InitializeLogFile(cfg.LogDir, config.LogFileName, cfg.LogTee); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize log file: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := run(ctx, cfg, os.Stdin, os.Stdout)
	stop()

	if closeErr := logx.CloseLogFile(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
	}
	os.Exit(exitCode)
}

// run wires the menu and returns the process exit code.
func run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) int {
	logger := logx.NewLogger("toolkit")

	reg, err := registry.Default()
	if err != nil {
		fmt.Fprintf(out, "❌ %v\n", logx.Wrap(err, "failed to load tool registry"))
		return 1
	}

	checks := preflight.Run(ctx, cfg, reg)
	logger.Info("%s", preflight.FormatResults(checks))
	for _, failed := range checks.Failed() {
		fmt.Fprintf(out, "⚠️  %s", preflight.FormatCheckError(failed))
	}

	runner := exec.NewRunner(cfg.ToolsDir, exec.NewLocalExec(), scripts.NewPlaceholder())
	controller := menu.NewController(reg, prompt.NewConsole(in, out), runner,
		menu.WithTimeout(cfg.Timeout),
		menu.WithErrorPause(cfg.ErrorPause),
	)

	logger.Info("Starting toolkit with %d tools from %s (timeout %s)", reg.Len(), cfg.ToolsDir, cfg.Timeout)
	if err := controller.Run(ctx); err != nil {
		fmt.Fprintf(out, "❌ %v\n", logx.Wrap(err, "menu stopped"))
		return 1
	}
	logger.Info("Toolkit exited after %d script launches", runner.Launches())
	return 0
}
