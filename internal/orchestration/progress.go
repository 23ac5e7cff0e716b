package orchestration

import (
	"time"

	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/progress"
)

// ProgressAggregator turns per-benchmark progress updates into session-wide
// progress and an ETA. Both the CLI and the TUI use it.
type ProgressAggregator struct {
	state         *format.ProgressWithETA
	numBenchmarks int
}

// NewProgressAggregator returns nil if numBenchmarks <= 0.
func NewProgressAggregator(numBenchmarks int) *ProgressAggregator {
	if numBenchmarks <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:         format.NewProgressWithETA(numBenchmarks),
		numBenchmarks: numBenchmarks,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	BenchmarkIndex int
	// Value is the benchmark's own progress (0.0 to 1.0).
	Value float64
	// AverageProgress is the session progress across all benchmarks.
	AverageProgress float64
	// ETA is the estimated time remaining for the session.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avgProgress, eta := a.state.UpdateWithETA(update.BenchmarkIndex, update.Value)
	return AggregatedProgress{
		BenchmarkIndex:  update.BenchmarkIndex,
		Value:           update.Value,
		AverageProgress: avgProgress,
		ETA:             eta,
	}
}

// CalculateAverage returns the current session progress without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumBenchmarks returns the number of benchmarks being tracked.
func (a *ProgressAggregator) NumBenchmarks() int {
	return a.numBenchmarks
}

// IsMultiBenchmark returns true if tracking more than one benchmark.
func (a *ProgressAggregator) IsMultiBenchmark() bool {
	return a.numBenchmarks > 1
}

// DrainChannel reads all updates from the channel until it is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
