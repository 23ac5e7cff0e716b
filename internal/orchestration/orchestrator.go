package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/agbru/microbench/internal/config"
	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/progress"
	"github.com/agbru/microbench/internal/workload"
)

// ProgressBufferSize is the capacity of the progress channel. Updates are
// sent between runs, so a small buffer keeps the harness from waiting on a
// slow display without letting the display fall far behind.
const ProgressBufferSize = 16

// ExecuteBenchmarks times each workload in order, never two at once, so that
// their samples do not disturb each other. A display goroutine consumes the
// progress channel for the whole session.
//
// Once ctx is done, the remaining workloads are not started; their results
// carry a BenchmarkError wrapping the context error.
func ExecuteBenchmarks(ctx context.Context, workloads []workload.Workload, runner Runner, reporter ProgressReporter, out io.Writer) []BenchmarkResult {
	results := make([]BenchmarkResult, len(workloads))
	progressChan := make(chan progress.ProgressUpdate, ProgressBufferSize)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(workloads), out)

	for i, w := range workloads {
		results[i].Workload = w
		results[i].Report.Name = w.Name()
		if err := ctx.Err(); err != nil {
			results[i].Err = apperrors.BenchmarkError{Workload: w.Name(), Cause: err}
			continue
		}
		report, err := runner.Run(ctx, i, w, progressChan)
		results[i].Report = report
		results[i].Err = err
	}

	close(progressChan)
	displayWg.Wait()
	return results
}

// AnalyzeResults sorts the results (successful first, fastest mean first),
// presents them and derives the exit code.
//
// Workloads of the same consistency group that ran the same K must report
// the same prime count; a disagreement yields ExitErrorMismatch. Any failed
// benchmark makes the session fail with that benchmark's exit code.
func AnalyzeResults(results []BenchmarkResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Report.Summary.Mean < results[j].Report.Summary.Mean
	})

	var firstError error
	successCount := 0
	for _, r := range results {
		if r.Err != nil {
			if firstError == nil {
				firstError = r.Err
			}
			continue
		}
		successCount++
	}

	if len(results) > 1 {
		presenter.PresentComparisonTable(results, opts, out)
	}

	if successCount == 0 {
		if !opts.Quiet {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No benchmark completed.\n")
		}
		return handler.HandleError(firstError, 0, out)
	}

	if err := checkConsistency(results); err != nil {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! %v\n", err)
		return apperrors.ExitErrorMismatch
	}

	for _, r := range results {
		if r.Err == nil {
			presenter.PresentResult(r, opts, out)
		}
	}

	if firstError != nil {
		return handler.HandleError(firstError, 0, out)
	}
	return apperrors.ExitSuccess
}

type consistencyKey struct {
	group      string
	iterations uint64
}

// checkConsistency compares the prime counts of successful results that
// share a consistency group and an iteration count.
func checkConsistency(results []BenchmarkResult) error {
	seen := make(map[consistencyKey]BenchmarkResult)
	for _, r := range results {
		if r.Err != nil || r.Workload == nil {
			continue
		}
		group := workload.ConsistencyGroup(r.Workload)
		if group == "" {
			continue
		}
		key := consistencyKey{group, r.Report.Iterations}
		first, ok := seen[key]
		if !ok {
			seen[key] = r
			continue
		}
		if first.Report.Outcome.Primes != r.Report.Outcome.Primes {
			return fmt.Errorf("%s found %d primes but %s found %d for K=%d",
				first.Name(), first.Report.Outcome.Primes, r.Name(), r.Report.Outcome.Primes, key.iterations)
		}
	}
	return nil
}

// GetWorkloadsToRun resolves the configured selection against the factory.
// Workloads are returned in sorted order for "all".
func GetWorkloadsToRun(cfg config.AppConfig, factory workload.Factory) ([]workload.Workload, error) {
	ws, err := workload.Select(factory, cfg.Workload)
	if err != nil {
		return nil, apperrors.ConfigError{Message: err.Error()}
	}
	return ws, nil
}
