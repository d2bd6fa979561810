package monitor

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics mirrors monitor readings as Prometheus series and writes them in
// the node_exporter textfile format after every check.
type Metrics struct {
	path     string
	registry *prometheus.Registry

	usage     *prometheus.GaugeVec
	threshold prometheus.Gauge
	checks    prometheus.Counter
	alerts    prometheus.Counter
}

// NewMetrics creates metrics flushed to path. An empty path disables Flush.
func NewMetrics(path string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		path:     path,
		registry: reg,
		usage: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "system_monitor_usage_percent",
				Help: "Latest utilisation reading by resource",
			},
			[]string{"resource"},
		),
		threshold: factory.NewGauge(prometheus.GaugeOpts{
			Name: "system_monitor_threshold_percent",
			Help: "Alert threshold in effect",
		}),
		checks: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_monitor_checks_total",
			Help: "Checks performed in this run",
		}),
		alerts: factory.NewCounter(prometheus.CounterOpts{
			Name: "system_monitor_alerts_total",
			Help: "Checks that raised at least one alert",
		}),
	}
}

func (m *Metrics) observe(r Resource, percent float64) {
	m.usage.WithLabelValues(string(r)).Set(percent)
}

// Flush writes the current values to the textfile.
func (m *Metrics) Flush() error {
	if m.path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", m.path, err)
	}
	return nil
}
