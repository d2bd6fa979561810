// Package config holds the toolkit's compiled-in settings.
//
// There is no configuration file. Every value below is a constant with an
// optional environment override, read once through Load.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Defaults.
const (
	// DefaultTimeout is the wall-clock limit for a single tool run.
	DefaultTimeout = 300 * time.Second

	// KillGrace bounds how long the runner waits for output pipes after the
	// child has been killed.
	KillGrace = 2 * time.Second

	// ErrorPause is how long the menu leaves an input error on screen.
	ErrorPause = 2 * time.Second

	// MonitorInterval is the pause between system monitor samples.
	MonitorInterval = 30 * time.Second

	ToolsDir           = "tools"
	AlertLogName       = "system_alerts.log"
	MonitorMetricsName = "system_monitor.prom"
	LogDir             = ".toolkit/logs"
	LogFileName        = "toolkit.log"

	// ProcessedPrefix is prepended to files by the file processor's rename operation.
	ProcessedPrefix = "processed_"
)

// Environment variable names.
const (
	EnvToolsDir = "TOOLKIT_TOOLS_DIR"
	EnvTimeout  = "TOOLKIT_TIMEOUT"
	EnvLogDir   = "TOOLKIT_LOG_DIR"
	EnvLogTee   = "TOOLKIT_LOG_TEE"
	EnvRunID    = "TOOLKIT_RUN_ID"

	EnvMonitorInterval = "TOOLKIT_MONITOR_INTERVAL"
)

// Config is the resolved runtime configuration.
type Config struct {
	ToolsDir   string
	Timeout    time.Duration
	LogDir     string
	LogTee     bool
	ErrorPause time.Duration

	// MonitorInterval is read by the system monitor tool, not the menu.
	MonitorInterval time.Duration
}

// Default returns the compiled-in configuration without consulting the environment.
func Default() Config {
	return Config{
		ToolsDir:   ToolsDir,
		Timeout:    DefaultTimeout,
		LogDir:     LogDir,
		ErrorPause: ErrorPause,

		MonitorInterval: MonitorInterval,
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvToolsDir); ok && strings.TrimSpace(v) != "" {
		cfg.ToolsDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogDir); ok && strings.TrimSpace(v) != "" {
		cfg.LogDir = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTimeout); ok && strings.TrimSpace(v) != "" {
		d, err := parsePositiveDuration(EnvTimeout, v)
		if err != nil {
			return cfg, err
		}
		cfg.Timeout = d
	}
	if v, ok := lookup(EnvMonitorInterval); ok && strings.TrimSpace(v) != "" {
		d, err := parsePositiveDuration(EnvMonitorInterval, v)
		if err != nil {
			return cfg, err
		}
		cfg.MonitorInterval = d
	}
	if v, ok := lookup(EnvLogTee); ok {
		cfg.LogTee = isTruthy(v)
	}

	return cfg, nil
}

func parsePositiveDuration(name, v string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", name, v)
	}
	return d, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
