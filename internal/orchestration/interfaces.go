package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/harness"
	"github.com/agbru/microbench/internal/progress"
	"github.com/agbru/microbench/internal/workload"
)

// BenchmarkResult pairs a workload with its harness report or failure.
// It serves as the shared domain type between orchestration and presentation layers.
type BenchmarkResult struct {
	Workload workload.Workload
	Report   harness.Report
	// Err is non-nil when the benchmark did not complete all runs; Report
	// then holds the runs that did.
	Err error
}

// Name returns the workload name.
func (r BenchmarkResult) Name() string {
	return r.Report.Name
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	Unit format.Unit
	// Precision is the number of decimals, or -1 for the workload default.
	Precision int
	// Spread forces stdev and CV lines for every workload.
	Spread  bool
	Verbose bool
	Quiet   bool
}

// Runner times one workload. harness.Harness implements it.
type Runner interface {
	Run(ctx context.Context, index int, w workload.Workload, updates chan<- progress.ProgressUpdate) (harness.Report, error)
}

// ProgressReporter displays progress while benchmarks run.
type ProgressReporter interface {
	// DisplayProgress consumes progressChan until it is closed, then calls
	// wg.Done. It runs in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, out io.Writer) {
	f(wg, progressChan, numBenchmarks, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents finished benchmarks.
type ResultPresenter interface {
	// PresentComparisonTable displays one row per benchmark.
	PresentComparisonTable(results []BenchmarkResult, opts PresentationOptions, out io.Writer)
	// PresentResult displays the summary lines of one benchmark.
	PresentResult(result BenchmarkResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps a failure to a user message and an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
