package harness

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/logging"
	"github.com/agbru/microbench/internal/metrics"
	"github.com/agbru/microbench/internal/progress"
	"github.com/agbru/microbench/internal/stats"
	"github.com/agbru/microbench/internal/workload"
)

const tracerName = "github.com/agbru/microbench/internal/harness"

// Clock provides the monotonic readings that delimit a run.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type systemClock struct{}

func (systemClock) Now() time.Time                  { return time.Now() }
func (systemClock) Since(t time.Time) time.Duration { return time.Since(t) }

// SystemClock is the wall clock. time.Now carries a monotonic reading, so
// samples are immune to wall-clock adjustments.
var SystemClock Clock = systemClock{}

// Recorder receives per-run and per-benchmark measurements.
// *metrics.Recorder implements it.
type Recorder interface {
	ObserveRun(workload string, d time.Duration)
	ObserveSummary(workload string, mean, stddev float64, hasSpread bool)
	ObservePrimes(workload string, n int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveRun(string, time.Duration)              {}
func (nopRecorder) ObserveSummary(string, float64, float64, bool) {}
func (nopRecorder) ObservePrimes(string, int)                     {}

// Harness drives the timed runs of a workload. The zero value is not usable
// because Runs must be at least one; the remaining fields have defaults.
type Harness struct {
	// Runs is R, the number of timed runs.
	Runs int
	// Iterations is K. Zero selects the workload's default.
	Iterations uint64
	// GC selects how the garbage collector is handled during the benchmark.
	GC GCMode

	Clock    Clock
	Logger   logging.Logger
	Tracer   trace.Tracer
	Recorder Recorder
	Memory   *metrics.MemoryCollector
}

// Report is the result of timing one workload.
type Report struct {
	Name       string
	Runs       int
	Iterations uint64
	// Samples holds one elapsed time per completed run, in run order.
	Samples []time.Duration
	// Outcome is what the last completed run computed.
	Outcome workload.Outcome
	// Summary describes Samples in seconds.
	Summary stats.Summary
	// Memory is the runtime memory delta across the whole benchmark.
	Memory metrics.MemoryDelta
	// Elapsed is the wall-clock time of the whole benchmark, overhead included.
	Elapsed time.Duration
}

func (h *Harness) withDefaults() {
	if h.Clock == nil {
		h.Clock = SystemClock
	}
	if h.Logger == nil {
		h.Logger = logging.NewNopLogger()
	}
	if h.Tracer == nil {
		h.Tracer = otel.Tracer(tracerName)
	}
	if h.Recorder == nil {
		h.Recorder = nopRecorder{}
	}
	if h.Memory == nil {
		h.Memory = metrics.NewMemoryCollector()
	}
}

// Run times w. For each of the R runs it checks ctx, takes a start reading,
// executes K iterations, takes the elapsed reading and appends the sample;
// a progress update is then sent on updates (which may be nil).
//
// Cancellation is observed between runs only. When ctx ends early the
// returned Report holds the samples gathered so far and the error is a
// BenchmarkError wrapping the context error.
func (h Harness) Run(ctx context.Context, index int, w workload.Workload, updates chan<- progress.ProgressUpdate) (Report, error) {
	if h.Runs < 1 {
		return Report{Name: w.Name()}, apperrors.ValidationError{Field: "runs", Message: "must be at least 1"}
	}
	h.withDefaults()

	k := h.Iterations
	if k == 0 {
		k = w.DefaultIterations()
	}
	if limit := workload.IterationLimit(w); k > limit {
		return Report{Name: w.Name()}, apperrors.ValidationError{
			Field:   "iterations",
			Message: fmt.Sprintf("%d exceeds the %s limit of %d", k, w.Name(), limit),
		}
	}
	name := w.Name()
	report := Report{
		Name:       name,
		Runs:       h.Runs,
		Iterations: k,
		Samples:    make([]time.Duration, 0, h.Runs),
	}

	ctx, span := h.Tracer.Start(ctx, "benchmark",
		trace.WithAttributes(
			attribute.String("workload", name),
			attribute.Int("runs", h.Runs),
			attribute.Int64("iterations", int64(k)),
		))
	defer span.End()

	h.Logger.Debug("benchmark starting",
		logging.String("workload", name),
		logging.Int("runs", h.Runs),
		logging.Uint64("iterations", k))

	gc := newGCController(h.GC)
	begin := h.Clock.Now()
	before := h.Memory.Snapshot()
	gc.Begin()

	var runErr error
	for r := 1; r <= h.Runs; r++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		gc.BeforeRun()
		_, runSpan := h.Tracer.Start(ctx, "run", trace.WithAttributes(attribute.Int("run", r)))

		start := h.Clock.Now()
		out := w.Run(k)
		elapsed := h.Clock.Since(start)

		runSpan.End()
		report.Samples = append(report.Samples, elapsed)
		report.Outcome = out
		h.Recorder.ObserveRun(name, elapsed)
		progress.Send(ctx, updates, progress.NewUpdate(index, name, r, h.Runs, elapsed))
	}

	gc.End()
	report.Memory = before.Delta(h.Memory.Snapshot())
	report.Elapsed = h.Clock.Since(begin)
	report.Summary = stats.Summarize(stats.FromDurations(report.Samples, time.Second))

	if report.Summary.N > 0 {
		h.Recorder.ObserveSummary(name, report.Summary.Mean, report.Summary.StdDev, report.Summary.HasSpread)
	}
	if report.Outcome.Primes > 0 {
		h.Recorder.ObservePrimes(name, report.Outcome.Primes)
	}
	span.SetAttributes(
		attribute.Int("samples", len(report.Samples)),
		attribute.Float64("mean_seconds", report.Summary.Mean),
	)

	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		h.Logger.Debug("benchmark interrupted",
			logging.String("workload", name),
			logging.Int("completed_runs", len(report.Samples)))
		return report, apperrors.BenchmarkError{Workload: name, Cause: runErr}
	}

	h.Logger.Debug("benchmark finished",
		logging.String("workload", name),
		logging.Float64("mean_seconds", report.Summary.Mean),
		logging.Duration("elapsed", report.Elapsed))
	return report, nil
}
