// Package eventlog provides the append-only alert log shared by monitoring tools.
package eventlog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// AlertLog appends one timestamped line per alert event to a text file.
// Each Append opens the file in append mode, so several processes may write
// to it; lines are not interleaved within a single writer.
type AlertLog struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

// NewAlertLog creates an alert log writing to path.
func NewAlertLog(path string) *AlertLog {
	return &AlertLog{path: path, now: time.Now}
}

// Path returns the log file location.
func (l *AlertLog) Path() string {
	return l.path
}

// FormatAlert renders the log line for alerts observed at ts.
func FormatAlert(ts time.Time, alerts []string) string {
	return fmt.Sprintf("[%s] ALERT: %s", ts.Format("15:04:05"), strings.Join(alerts, ", "))
}

// Append writes one line for alerts stamped with the current time. Errors
// are returned for the caller to report; they are never fatal to the writer.
func (l *AlertLog) Append(alerts []string) error {
	return l.AppendAt(l.now(), alerts)
}

// AppendAt writes one line for alerts observed at ts.
func (l *AlertLog) AppendAt(ts time.Time, alerts []string) error {
	if len(alerts) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open alert log %s: %w", l.path, err)
	}

	line := FormatAlert(ts, alerts) + "\n"
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write alert: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to sync alert log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close alert log: %w", err)
	}
	return nil
}

// ReadAlerts returns the lines of an alert log file.
func ReadAlerts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alert log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alert log: %w", err)
	}
	return lines, nil
}
