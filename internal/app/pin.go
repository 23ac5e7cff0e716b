package app

import (
	"context"

	"github.com/agbru/microbench/internal/harness"
	"github.com/agbru/microbench/internal/logging"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/progress"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/workload"
)

// pinnedRunner pins the goroutine that times a workload to one CPU.
// Affinity is per OS thread, so the pin happens inside Run, on whichever
// goroutine the caller (CLI loop or TUI command) executes it.
type pinnedRunner struct {
	inner  orchestration.Runner
	cpu    int
	logger logging.Logger
}

func (p pinnedRunner) Run(ctx context.Context, index int, w workload.Workload, updates chan<- progress.ProgressUpdate) (harness.Report, error) {
	restore, err := sysmon.PinCPU(p.cpu)
	if err != nil {
		p.logger.Error("CPU pinning unavailable, running unpinned", err, logging.Int("cpu", p.cpu))
		return p.inner.Run(ctx, index, w, updates)
	}
	defer restore()
	p.logger.Debug("pinned to CPU", logging.Int("cpu", p.cpu), logging.String("workload", w.Name()))
	return p.inner.Run(ctx, index, w, updates)
}
