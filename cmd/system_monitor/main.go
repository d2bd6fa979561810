// Command system_monitor is the System Monitor tool.
package main

import (
	"context"

	"toolkit/pkg/config"
	"toolkit/pkg/eventlog"
	"toolkit/pkg/monitor"
	"toolkit/pkg/toolio"
)

func main() {
	toolio.Main(func(ctx context.Context, req monitor.Request, streams toolio.IO) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		m := monitor.New(
			monitor.NewSystemSampler(),
			eventlog.NewAlertLog(config.AlertLogName),
			streams,
			monitor.WithInterval(cfg.MonitorInterval),
			monitor.WithMetrics(monitor.NewMetrics(config.MonitorMetricsName)),
		)
		_, err = m.Run(ctx, req)
		return err
	})
}
