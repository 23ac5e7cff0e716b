package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/agbru/microbench/internal/cli"
	"github.com/agbru/microbench/internal/logging"
	"github.com/agbru/microbench/internal/metrics"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/server"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/workload"
)

// runBenchmarks runs the selected workloads in CLI mode and presents the
// results.
func (a *Application) runBenchmarks(ctx context.Context, workloads []workload.Workload, runner orchestration.Runner, opts orchestration.PresentationOptions, out io.Writer) (int, []orchestration.BenchmarkResult) {
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, hostInfo(ctx), out)
		cli.PrintExecutionMode(workloads, out)
		if s := sysmon.Sample(ctx); s.Busy() {
			cli.PrintBusyWarning(s, out)
		}
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	if a.Config.Quiet || a.Config.PrintPrimes {
		// The spinner would interleave with the printed primes.
		reporter = orchestration.NullProgressReporter{}
	}

	results := orchestration.ExecuteBenchmarks(ctx, workloads, runner, reporter, out)
	presenter := cli.CLIResultPresenter{}
	return orchestration.AnalyzeResults(results, opts, presenter, presenter, out), results
}

// startMetricsServer exposes the recorder over HTTP when --metrics-addr is
// set. The returned function stops the server.
func (a *Application) startMetricsServer(ctx context.Context, recorder *metrics.Recorder) func() {
	if a.Config.MetricsAddr == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	srv := server.New(a.Config.MetricsAddr, server.NewMetrics(recorder.Gatherer()), a.Logger)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// writeOutputs persists the JSON report and the Prometheus textfile.
func (a *Application) writeOutputs(ctx context.Context, results []orchestration.BenchmarkResult, recorder *metrics.Recorder) error {
	if a.Config.OutputFile != "" && len(results) > 0 {
		settings := cli.ReportSettings{
			Workload:   a.Config.Workload,
			Runs:       a.Config.Runs,
			Iterations: a.Config.Iterations,
			GCMode:     a.Config.GCMode,
			PinCPU:     a.Config.PinCPU,
		}
		report := cli.BuildReport(Version, time.Now().UTC(), hostInfo(context.WithoutCancel(ctx)), settings, results)
		if err := cli.WriteReportToFile(a.Config.OutputFile, report); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		a.Logger.Debug("report written", logging.String("path", a.Config.OutputFile))
	}
	if a.Config.MetricsFile != "" {
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics textfile: %w", err)
		}
		a.Logger.Debug("metrics textfile written", logging.String("path", a.Config.MetricsFile))
	}
	return nil
}
