package cli

import (
	"time"

	"github.com/agbru/microbench/internal/harness"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/stats"
	"github.com/agbru/microbench/internal/workload"
)

// newResult builds a result whose samples are the given milliseconds.
func newResult(w workload.Workload, outcome workload.Outcome, ms ...float64) orchestration.BenchmarkResult {
	samples := make([]time.Duration, len(ms))
	for i, v := range ms {
		samples[i] = time.Duration(v * float64(time.Millisecond))
	}
	return orchestration.BenchmarkResult{
		Workload: w,
		Report: harness.Report{
			Name:       w.Name(),
			Runs:       len(ms),
			Iterations: outcome.Iterations,
			Samples:    samples,
			Outcome:    outcome,
			Summary:    stats.Summarize(stats.FromDurations(samples, time.Second)),
		},
	}
}
