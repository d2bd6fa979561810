// Package monitor samples host resource usage for a fixed duration and
// raises alerts when a reading crosses a threshold.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"toolkit/pkg/config"
	"toolkit/pkg/eventlog"
	"toolkit/pkg/logx"
	"toolkit/pkg/toolio"
)

// ErrUnknownCheck is returned for a check type other than cpu, memory, disk or all.
var ErrUnknownCheck = errors.New("unknown check type")

// Resource is a monitored resource.
type Resource string

// Monitored resources.
const (
	CPU    Resource = "cpu"
	Memory Resource = "memory"
	Disk   Resource = "disk"
)

var resourceLabels = map[Resource]string{
	CPU:    "🔄 CPU",
	Memory: "🧠 Memory",
	Disk:   "💾 Disk",
}

var alertLabels = map[Resource]string{
	CPU:    "CPU",
	Memory: "Memory",
	Disk:   "Disk",
}

// Request is the decoded tool input.
type Request struct {
	CheckType string  `json:"check_type"`
	Threshold float64 `json:"threshold"`
	Duration  int     `json:"duration"`
}

// Resources expands the check type into the resources to sample.
func (r Request) Resources() ([]Resource, error) {
	switch Resource(strings.ToLower(strings.TrimSpace(r.CheckType))) {
	case CPU:
		return []Resource{CPU}, nil
	case Memory:
		return []Resource{Memory}, nil
	case Disk:
		return []Resource{Disk}, nil
	case "all":
		return []Resource{CPU, Memory, Disk}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCheck, r.CheckType)
	}
}

// Clock abstracts time for the sampling loop.
type Clock interface {
	Now() time.Time
	// Sleep waits for d and returns ctx.Err() if ctx ends first.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Summary describes a finished run.
type Summary struct {
	Runtime time.Duration
	Checks  int
	Alerts  int
	Stopped bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithInterval sets the pause between checks.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(m *Monitor) { m.clock = c }
}

// WithMetrics enables the Prometheus textfile.
func WithMetrics(metrics *Metrics) Option {
	return func(m *Monitor) { m.metrics = metrics }
}

// Monitor runs sampling loops.
type Monitor struct {
	sampler  Sampler
	alerts   *eventlog.AlertLog
	metrics  *Metrics
	streams  toolio.IO
	clock    Clock
	interval time.Duration
	logger   *logx.Logger
}

// New creates a monitor that samples with sampler and records alerts in alerts.
func New(sampler Sampler, alerts *eventlog.AlertLog, streams toolio.IO, opts ...Option) *Monitor {
	m := &Monitor{
		sampler:  sampler,
		alerts:   alerts,
		streams:  streams,
		clock:    realClock{},
		interval: config.MonitorInterval,
		logger:   logx.NewLogger("system_monitor"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run checks the requested resources every interval until req.Duration
// minutes have elapsed or ctx is cancelled. Cancellation ends the run
// normally with Summary.Stopped set.
func (m *Monitor) Run(ctx context.Context, req Request) (Summary, error) {
	resources, err := req.Resources()
	if err != nil {
		return Summary{}, err
	}

	m.streams.Printf("🖥️  System Monitor Started\n")
	m.streams.Printf("📊 Monitoring: %s\n", strings.ToLower(strings.TrimSpace(req.CheckType)))
	m.streams.Printf("⚠️  Alert threshold: %g%%\n", req.Threshold)
	m.streams.Printf("⏱️  Duration: %d minutes\n", req.Duration)
	m.streams.Printf("%s\n", strings.Repeat("-", 50))

	if m.metrics != nil {
		m.metrics.threshold.Set(req.Threshold)
	}

	var summary Summary
	start := m.clock.Now()
	end := start.Add(time.Duration(req.Duration) * time.Minute)

	for m.clock.Now().Before(end) {
		summary.Checks++
		observed, alerts, stopped := m.check(ctx, resources, req.Threshold)
		if stopped {
			summary.Stopped = true
			break
		}
		m.record(observed, alerts, &summary)

		wait := m.interval
		if remaining := end.Sub(m.clock.Now()); remaining < wait {
			wait = remaining
		}
		if wait <= 0 {
			continue
		}
		m.streams.Printf("   💤 Sleeping for %s...\n", wait.Round(time.Second))
		if err := m.clock.Sleep(ctx, wait); err != nil {
			summary.Stopped = true
			break
		}
	}

	if summary.Stopped {
		m.streams.Printf("\n⏹️  Monitoring stopped by user\n")
	}
	summary.Runtime = m.clock.Now().Sub(start)

	m.streams.Printf("%s\n", strings.Repeat("-", 50))
	m.streams.Printf("📊 Monitoring Summary:\n")
	m.streams.Printf("   ⏱️  Total runtime: %.1f minutes\n", summary.Runtime.Minutes())
	m.streams.Printf("   🔍 Total checks: %d\n", summary.Checks)
	m.streams.Printf("   🚨 Total alerts: %d\n", summary.Alerts)
	return summary, nil
}

type reading struct {
	resource Resource
	percent  float64
}

// check samples every resource once and returns the alerts raised. stopped
// reports that ctx ended mid-check.
func (m *Monitor) check(ctx context.Context, resources []Resource, threshold float64) ([]reading, []string, bool) {
	ts := m.clock.Now().Format("15:04:05")
	var observed []reading
	var alerts []string

	for _, r := range resources {
		percent, err := m.sampler.Sample(ctx, r)
		if err != nil {
			if ctx.Err() != nil {
				return observed, alerts, true
			}
			m.logger.Debug("sampling %s failed: %v", r, err)
			m.streams.Errorf("[%s] ❌ %v\n", ts, err)
			continue
		}
		observed = append(observed, reading{resource: r, percent: percent})

		status := " ✅"
		if percent > threshold {
			alerts = append(alerts, fmt.Sprintf("%s: %.1f%%", alertLabels[r], percent))
			status = " ⚠️  HIGH!"
		}
		m.streams.Printf("[%s] %s Usage: %.1f%%%s\n", ts, resourceLabels[r], percent, status)
	}
	return observed, alerts, false
}

func (m *Monitor) record(observed []reading, alerts []string, summary *Summary) {
	if len(alerts) > 0 {
		summary.Alerts++
		m.streams.Printf("🚨 ALERT #%d: %s\n", summary.Alerts, strings.Join(alerts, ", "))
		if err := m.alerts.AppendAt(m.clock.Now(), alerts); err != nil {
			m.streams.Printf("   ❌ Failed to log alert: %v\n", err)
		} else {
			m.streams.Printf("   📝 Alert logged to %s\n", m.alerts.Path())
		}
	}

	if m.metrics == nil {
		return
	}
	for _, r := range observed {
		m.metrics.observe(r.resource, r.percent)
	}
	m.metrics.checks.Inc()
	if len(alerts) > 0 {
		m.metrics.alerts.Inc()
	}
	if err := m.metrics.Flush(); err != nil {
		m.logger.Debug("metrics flush: %v", err)
		m.streams.Errorf("⚠️  %v\n", err)
	}
}
