package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements orchestration.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numBenchmarks)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			BenchmarkIndex:  ap.BenchmarkIndex,
			Workload:        update.Workload,
			Run:             update.Run,
			Runs:            update.Runs,
			Sample:          update.Sample,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements orchestration.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler    = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends comparison results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results, Options: opts})
}

// PresentResult sends the final result to the TUI.
func (t *TUIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Options: opts})
}

// HandleError sends an error message to the TUI and returns the exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	if err != nil {
		t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	}
	return apperrors.HandleBenchmarkError(err, duration, io.Discard, nil)
}
