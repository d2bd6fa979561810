package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
)

// Sampler reads the current utilisation of a resource as a percentage.
type Sampler interface {
	Sample(ctx context.Context, r Resource) (float64, error)
}

// SystemSampler samples the local host.
type SystemSampler struct {
	// DiskPath is the mount point whose usage is reported.
	DiskPath string
	// CPUWindow is how long CPU usage is measured over.
	CPUWindow time.Duration
}

// NewSystemSampler samples the root filesystem and a one second CPU window.
func NewSystemSampler() *SystemSampler {
	return &SystemSampler{DiskPath: "/", CPUWindow: time.Second}
}

// Sample implements Sampler.
func (s *SystemSampler) Sample(ctx context.Context, r Resource) (float64, error) {
	switch r {
	case CPU:
		percents, err := cpu.PercentWithContext(ctx, s.CPUWindow, false)
		if err != nil {
			return 0, fmt.Errorf("failed to read cpu usage: %w", err)
		}
		if len(percents) == 0 {
			return 0, fmt.Errorf("failed to read cpu usage: no samples")
		}
		return percents[0], nil
	case Memory:
		vm, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read memory usage: %w", err)
		}
		return vm.UsedPercent, nil
	case Disk:
		usage, err := disk.UsageWithContext(ctx, s.DiskPath)
		if err != nil {
			return 0, fmt.Errorf("failed to read disk usage of %s: %w", s.DiskPath, err)
		}
		if usage.Total == 0 {
			return 0, nil
		}
		return float64(usage.Used) / float64(usage.Total) * 100, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownCheck, r)
	}
}
