// Package progress defines the progress messages exchanged between the
// benchmark harness and the presentation layers.
package progress

import (
	"context"
	"time"
)

// ProgressUpdate reports that one timed run of a benchmark has completed.
type ProgressUpdate struct {
	// BenchmarkIndex identifies the benchmark among those being executed.
	BenchmarkIndex int
	// Workload is the name of the workload being timed.
	Workload string
	// Run is the 1-based index of the run that just completed.
	Run int
	// Runs is the total number of runs planned for the benchmark.
	Runs int
	// Sample is the elapsed wall-clock time of the completed run.
	Sample time.Duration
	// Value is the normalized progress of the benchmark (0.0 to 1.0).
	Value float64
}

// Done reports whether this update marks the final run.
func (u ProgressUpdate) Done() bool {
	return u.Run >= u.Runs
}

// NewUpdate builds an update for run r (1-based) of runs.
func NewUpdate(index int, workload string, r, runs int, sample time.Duration) ProgressUpdate {
	value := 1.0
	if runs > 0 {
		value = float64(r) / float64(runs)
	}
	return ProgressUpdate{
		BenchmarkIndex: index,
		Workload:       workload,
		Run:            r,
		Runs:           runs,
		Sample:         sample,
		Value:          value,
	}
}

// Send delivers u on ch, giving up when ctx is done. A nil channel is a no-op.
// Callers send between runs, outside the timed region.
func Send(ctx context.Context, ch chan<- ProgressUpdate, u ProgressUpdate) {
	if ch == nil {
		return
	}
	select {
	case ch <- u:
	case <-ctx.Done():
	}
}
