// Package config parses command-line flags and environment variables into
// the application configuration.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/harness"
	"github.com/agbru/microbench/internal/ui"
	"github.com/agbru/microbench/internal/workload"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "MICROBENCH_"

// Defaults.
const (
	DefaultWorkload    = "prime-scan"
	DefaultRuns        = 100
	DefaultStart       = 1
	DefaultTimeout     = 10 * time.Minute
	DefaultUnit        = "ms"
	DefaultVerifyLimit = 1_000_000
	DefaultLogLevel    = "info"
	DefaultTheme       = "dark"

	// PrecisionAuto selects the per-workload number of decimals.
	PrecisionAuto = -1
	// NoPin disables CPU pinning.
	NoPin = -1

	maxPrecision = 12
)

// AppConfig holds the resolved configuration of one invocation.
type AppConfig struct {
	// Workload is a registered workload name or "all".
	Workload string
	// Runs is R, the number of timed runs per workload.
	Runs int
	// Iterations is K; zero selects each workload's default.
	Iterations uint64
	// Start is the prime-scan counter's initial value.
	Start int64
	// PrintPrimes prints every prime the prime scan finds.
	PrintPrimes bool
	// Spread forces standard deviation and CV into every summary.
	Spread bool
	// Unit is the reporting unit: ms, s or us.
	Unit string
	// Precision is the number of decimals, or PrecisionAuto.
	Precision int
	Timeout   time.Duration
	Quiet     bool
	Verbose   bool
	NoColor   bool
	TUI       bool
	// OutputFile receives a JSON report when set.
	OutputFile string
	// MetricsAddr serves /metrics and /healthz while running when set.
	MetricsAddr string
	// MetricsFile receives a Prometheus textfile export when set.
	MetricsFile string
	// Verify cross-checks the primality predicate before timing.
	Verify        bool
	VerifyLimit   int64
	VerifyWorkers int
	// PinCPU pins the benchmarking thread to a CPU, or NoPin.
	PinCPU int
	// GCMode is one of default, collect, disabled.
	GCMode     string
	LogLevel   string
	Theme      string
	Completion string
}

// ParseConfig parses args (without the program name) into an AppConfig,
// then applies environment overrides for flags not set on the command line
// and validates the result against availableWorkloads.
//
// -h/--help returns flag.ErrHelp after printing usage to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableWorkloads []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Workload, "workload", DefaultWorkload, "Workload to time ('all' runs every workload)")
	fs.StringVar(&config.Workload, "w", DefaultWorkload, "Shorthand for --workload")
	fs.IntVar(&config.Runs, "runs", DefaultRuns, "Number of timed runs")
	fs.IntVar(&config.Runs, "r", DefaultRuns, "Shorthand for --runs")
	fs.Uint64Var(&config.Iterations, "iterations", 0, "Inner iterations per run (0 = workload default)")
	fs.Uint64Var(&config.Iterations, "k", 0, "Shorthand for --iterations")
	fs.Int64Var(&config.Start, "start", DefaultStart, "Initial counter value of the prime scan")
	fs.BoolVar(&config.PrintPrimes, "print-primes", false, "Print primes found by the prime scan")
	fs.BoolVar(&config.Spread, "spread", false, "Always report standard deviation and CV")
	fs.StringVar(&config.Unit, "unit", DefaultUnit, "Reporting unit: ms, s or us")
	fs.IntVar(&config.Precision, "precision", PrecisionAuto, "Decimals in summary lines (-1 = workload default)")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole session")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the summary values")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print per-run samples and debug logs")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&config.TUI, "tui", false, "Run the interactive dashboard")
	fs.StringVar(&config.OutputFile, "output", "", "Write a JSON report to this file")
	fs.StringVar(&config.OutputFile, "o", "", "Shorthand for --output")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile when done")
	fs.BoolVar(&config.Verify, "verify", false, "Cross-check the primality predicate before timing")
	fs.Int64Var(&config.VerifyLimit, "verify-limit", DefaultVerifyLimit, "Upper bound of the --verify range")
	fs.IntVar(&config.VerifyWorkers, "verify-workers", 0, "Goroutines used by --verify (0 = adaptive)")
	fs.IntVar(&config.PinCPU, "pin-cpu", NoPin, "Pin the benchmark thread to this CPU (-1 = off)")
	fs.StringVar(&config.GCMode, "gc", string(harness.GCModeDefault), "Garbage collector handling: default, collect or disabled")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Color theme: dark or light")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script: bash, zsh, fish or powershell")

	fs.Usage = func() { printUsage(fs, programName, availableWorkloads) }

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	applyEnvOverrides(&config, fs)
	config = ApplyAdaptiveDefaults(config)

	if err := config.Validate(availableWorkloads); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks semantic constraints that flag parsing cannot express.
// All failures are ConfigErrors.
func (c AppConfig) Validate(availableWorkloads []string) error {
	if c.Completion != "" {
		// Completion output does not depend on the rest of the configuration.
		return nil
	}
	if c.Runs < 1 {
		return apperrors.NewConfigError("--runs must be at least 1, got %d", c.Runs)
	}
	if c.Workload != "all" && !slices.Contains(availableWorkloads, c.Workload) {
		return apperrors.NewConfigError("unknown workload %q (available: all, %s)", c.Workload, strings.Join(availableWorkloads, ", "))
	}
	if err := c.validateIterations(availableWorkloads); err != nil {
		return err
	}
	if _, ok := format.ParseUnit(c.Unit); !ok {
		return apperrors.NewConfigError("unknown unit %q (want ms, s or us)", c.Unit)
	}
	if c.Precision < PrecisionAuto || c.Precision > maxPrecision {
		return apperrors.NewConfigError("--precision must be between -1 and %d, got %d", maxPrecision, c.Precision)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	if c.Quiet && c.TUI {
		return apperrors.NewConfigError("--quiet and --tui are mutually exclusive")
	}
	if c.PrintPrimes && c.TUI {
		return apperrors.NewConfigError("--print-primes and --tui are mutually exclusive")
	}
	if c.PinCPU < NoPin {
		return apperrors.NewConfigError("--pin-cpu must be -1 or a CPU index, got %d", c.PinCPU)
	}
	if c.Verify && c.VerifyLimit < 2 {
		return apperrors.NewConfigError("--verify-limit must be at least 2, got %d", c.VerifyLimit)
	}
	if _, err := harness.ParseGCMode(c.GCMode); err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	if !slices.Contains(ui.ThemeNames, c.Theme) {
		return apperrors.NewConfigError("unknown theme %q (want %s)", c.Theme, strings.Join(ui.ThemeNames, " or "))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return apperrors.NewConfigError("unknown log level %q", c.LogLevel)
	}
	return nil
}

// validateIterations checks an explicit K against the limit of every selected
// workload. Names unknown to the default workloads are checked by the
// harness instead.
func (c AppConfig) validateIterations(availableWorkloads []string) error {
	if c.Iterations == 0 {
		return nil
	}
	if c.Iterations > workload.MaxIterations {
		return apperrors.NewConfigError("--iterations must be at most %d, got %d", workload.MaxIterations, c.Iterations)
	}
	names := []string{c.Workload}
	if c.Workload == "all" {
		names = availableWorkloads
	}
	factory := workload.NewDefaultFactory(workload.Options{Start: c.Start})
	for _, name := range names {
		w, err := factory.Get(name)
		if err != nil {
			continue
		}
		if limit := workload.IterationLimit(w); c.Iterations > limit {
			return apperrors.NewConfigError("--iterations %d exceeds the %s limit of %d", c.Iterations, name, limit)
		}
	}
	return nil
}

func printUsage(fs *flag.FlagSet, programName string, workloads []string) {
	out := fs.Output()
	fmt.Fprintf(out, "Usage: %s [flags]\n\n", programName)
	fmt.Fprintf(out, "Times R runs of K iterations of a CPU-bound workload and reports\n")
	fmt.Fprintf(out, "the mean, standard deviation and coefficient of variation.\n\n")
	fmt.Fprintf(out, "Workloads: all, %s\n\n", strings.Join(workloads, ", "))
	fmt.Fprintf(out, "Flags:\n")
	fs.PrintDefaults()
	fmt.Fprintf(out, "\nEvery long flag can also be set through %s<NAME>, e.g. %sRUNS=50.\n", EnvPrefix, EnvPrefix)
}
