package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/agbru/microbench/internal/cli"
	"github.com/agbru/microbench/internal/config"
	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/harness"
	"github.com/agbru/microbench/internal/logging"
	"github.com/agbru/microbench/internal/metrics"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/primality"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/tui"
	"github.com/agbru/microbench/internal/ui"
	"github.com/agbru/microbench/internal/workload"
)

const tracerName = "github.com/agbru/microbench"

// Application represents the microbench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   workload.Factory
	ErrWriter io.Writer
	Logger    logging.Logger

	customFactory bool
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom workload factory. Without it the default
// workloads are built from the parsed configuration.
func WithFactory(f workload.Factory) AppOption {
	return func(a *Application) {
		a.Factory = f
		a.customFactory = f != nil
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application by parsing command-line arguments (args[0]
// is the program name). Parse failures other than --help are returned as
// ConfigErrors, reported on errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = workload.NewDefaultFactory(workload.Options{Start: config.DefaultStart})
	}

	programName := "microbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		if IsHelpError(err) {
			return nil, err
		}
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(errWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return nil, err
		}
		// The flag package has already reported the problem and the usage.
		return nil, apperrors.ConfigError{Message: err.Error()}
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)
	if ui.GetCurrentTheme().Name != ui.NoColorTheme.Name {
		ui.SetTheme(a.Config.Theme)
	}
	a.initLogger()

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.customFactory {
		a.Factory = workload.NewDefaultFactory(a.workloadOptions(out))
	}
	workloads, err := orchestration.GetWorkloadsToRun(a.Config, a.Factory)
	if err != nil {
		return apperrors.HandleBenchmarkError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	if a.Config.Verify {
		if code := a.runVerify(ctx, out); code != apperrors.ExitSuccess {
			return code
		}
	}

	recorder := metrics.NewRecorder()
	stopServer := a.startMetricsServer(ctx, recorder)
	defer stopServer()

	runner := a.newRunner(recorder)
	unit, _ := format.ParseUnit(a.Config.Unit)
	opts := orchestration.PresentationOptions{
		Unit:      unit,
		Precision: a.Config.Precision,
		Spread:    a.Config.Spread,
		Verbose:   a.Config.Verbose,
		Quiet:     a.Config.Quiet,
	}

	var (
		code    int
		results []orchestration.BenchmarkResult
	)
	if a.Config.TUI {
		code, results = tui.Run(ctx, tui.Session{
			Workloads: workloads,
			Runner:    runner,
			Config:    a.Config,
			Options:   opts,
			Version:   Version,
		})
	} else {
		code, results = a.runBenchmarks(ctx, workloads, runner, opts, out)
	}

	if err := a.writeOutputs(ctx, results, recorder); err != nil {
		a.Logger.Error("failed to write outputs", err)
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// initLogger configures the diagnostic logger unless one was injected.
// Quiet mode raises the level to warn and verbose mode lowers it to debug.
func (a *Application) initLogger() {
	level := logging.ParseLevel(a.Config.LogLevel)
	switch {
	case a.Config.Quiet && level < zerolog.WarnLevel:
		level = zerolog.WarnLevel
	case a.Config.Verbose && level > zerolog.DebugLevel:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if a.Logger == nil {
		a.Logger = logging.NewConsoleLogger(a.ErrWriter, "microbench", level)
	}
}

func (a *Application) workloadOptions(out io.Writer) workload.Options {
	opts := workload.Options{Start: a.Config.Start}
	if a.Config.PrintPrimes {
		opts.OnPrime = cli.PrimePrinter(out)
	}
	return opts
}

// newRunner builds the harness, pinned to a CPU when requested.
func (a *Application) newRunner(recorder *metrics.Recorder) orchestration.Runner {
	gc, _ := harness.ParseGCMode(a.Config.GCMode)
	var runner orchestration.Runner = harness.Harness{
		Runs:       a.Config.Runs,
		Iterations: a.Config.Iterations,
		GC:         gc,
		Logger:     a.Logger,
		Tracer:     otel.Tracer(tracerName),
		Recorder:   recorder,
		Memory:     metrics.NewMemoryCollector(),
	}
	if a.Config.PinCPU != config.NoPin {
		runner = pinnedRunner{inner: runner, cpu: a.Config.PinCPU, logger: a.Logger}
	}
	return runner
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runVerify cross-checks the primality predicate before any timing.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Verifying the primality predicate on [0, %d] against %s and trial division...\n",
			a.Config.VerifyLimit, primality.OracleName)
	}
	err := primality.Verify(ctx, 0, a.Config.VerifyLimit, a.Config.VerifyWorkers)
	if err != nil {
		return apperrors.HandleBenchmarkError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Info("primality predicate verified", logging.Int("workers", a.Config.VerifyWorkers))
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%sVerification passed.%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// hostInfo is swapped in tests to avoid probing the machine.
var hostInfo = sysmon.DescribeHost
