package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/progress"
	"github.com/briandowns/spinner"
)

// DisplayProgress shows a spinner with a session progress bar until
// progressChan is closed. With more than one benchmark the bar shows the
// average over all of them; the suffix names the benchmark currently
// running and its run counter.
//
// It calls wg.Done when it returns.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numBenchmarks)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last progress.ProgressUpdate
	var snapshot orchestration.AggregatedProgress
	dirty := false
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				if dirty {
					s.UpdateSuffix(progressSuffix(last, snapshot, agg.IsMultiBenchmark()))
				}
				return
			}
			last = update
			snapshot = agg.Update(update)
			dirty = true
		case <-ticker.C:
			if dirty {
				s.UpdateSuffix(progressSuffix(last, snapshot, agg.IsMultiBenchmark()))
				dirty = false
			}
		}
	}
}

func progressSuffix(u progress.ProgressUpdate, p orchestration.AggregatedProgress, multi bool) string {
	label := "Benchmarking"
	if u.Workload != "" {
		label = u.Workload
	}
	runInfo := ""
	if u.Runs > 0 {
		runInfo = fmt.Sprintf(" run %d/%d", u.Run, u.Runs)
	}
	bar := format.FormatProgressBarWithETA(p.AverageProgress, p.ETA, ProgressBarWidth)
	if multi {
		return fmt.Sprintf(" %s%s (benchmark %d) %s", label, runInfo, u.BenchmarkIndex+1, bar)
	}
	return fmt.Sprintf(" %s%s %s", label, runInfo, bar)
}
