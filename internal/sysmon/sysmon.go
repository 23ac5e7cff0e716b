// Package sysmon samples host CPU and memory load around benchmark sessions
// and pins the benchmarking goroutine to a CPU where the platform allows it.
package sysmon

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// BusyThreshold is the CPU usage above which timings are likely disturbed
// by other processes.
const BusyThreshold = 50.0

// Busy reports whether the host looked loaded when s was taken.
func (s Stats) Busy() bool {
	return s.CPUPercent >= BusyThreshold
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since the previous call). Fields are left zero
// on error.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// Host describes the machine a report was produced on.
type Host struct {
	CPUModel     string `json:"cpu_model,omitempty"`
	LogicalCPUs  int    `json:"logical_cpus"`
	PhysicalCPUs int    `json:"physical_cpus,omitempty"`
	TotalMemory  uint64 `json:"total_memory_bytes,omitempty"`
	GOOS         string `json:"goos"`
	GOARCH       string `json:"goarch"`
	GoVersion    string `json:"go_version"`
}

// DescribeHost gathers static host information. Probes that fail leave their
// fields empty; LogicalCPUs falls back to runtime.NumCPU.
func DescribeHost(ctx context.Context) Host {
	h := Host{
		LogicalCPUs: runtime.NumCPU(),
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		GoVersion:   runtime.Version(),
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, false); err == nil && n > 0 {
		h.PhysicalCPUs = n
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}

// Watch samples every interval and delivers the results on the returned
// channel until ctx is done, at which point the channel is closed. Samples
// are dropped while the receiver is busy.
func Watch(ctx context.Context, interval time.Duration) <-chan Stats {
	out := make(chan Stats, 1)
	go func() {
		defer close(out)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case out <- Sample(ctx):
				default:
				}
			}
		}
	}()
	return out
}
