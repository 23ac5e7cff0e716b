package tui

import (
	"time"

	"github.com/agbru/microbench/internal/orchestration"
)

// ProgressMsg reports one completed run together with the session progress.
type ProgressMsg struct {
	BenchmarkIndex  int
	Workload        string
	Run             int
	Runs            int
	Sample          time.Duration
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted results of an "all" session.
type ComparisonResultsMsg struct {
	Results []orchestration.BenchmarkResult
	Options orchestration.PresentationOptions
}

// FinalResultMsg carries one finished benchmark.
type FinalResultMsg struct {
	Result  orchestration.BenchmarkResult
	Options orchestration.PresentationOptions
}

// ErrorMsg reports a failed benchmark.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a host CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// SessionCompleteMsg is sent when every benchmark of a generation finished.
type SessionCompleteMsg struct {
	ExitCode   int
	Results    []orchestration.BenchmarkResult
	Generation uint64
}

// ContextCancelledMsg is sent when the session context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
