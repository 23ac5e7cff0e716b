package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/metrics"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/ui"
	"github.com/agbru/microbench/internal/workload"
)

// DefaultPrecision returns the number of decimals used for w in unit when
// the user did not choose one: two for milliseconds, four for seconds, with
// one more digit for workloads that report a CV.
func DefaultPrecision(w workload.Workload, unit format.Unit) int {
	extra := 0
	if w != nil && workload.ReportsCV(w) {
		extra = 1
	}
	switch unit.Name {
	case format.Seconds.Name:
		return 4 + extra
	case format.Microseconds.Name:
		return 0 + extra
	default:
		return 2 + extra
	}
}

func resolvePrecision(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions) int {
	if opts.Precision >= 0 {
		return opts.Precision
	}
	return DefaultPrecision(result.Workload, normalizeUnit(opts.Unit))
}

func normalizeUnit(u format.Unit) format.Unit {
	if u.Scale <= 0 {
		return format.Milliseconds
	}
	return u
}

// SummaryLines holds the formatted summary of one benchmark. StdDev and CV
// are empty when they are not reported.
type SummaryLines struct {
	Average string
	StdDev  string
	CV      string
}

// FormatSummary formats the summary lines of result without colors.
//
// The average line is always present. The standard deviation line appears
// when the workload reports spread or opts.Spread is set; the CV line when
// the workload reports a CV or opts.Spread is set. With fewer than two runs
// the spread is undefined and both lines say so.
func FormatSummary(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions) SummaryLines {
	unit := normalizeUnit(opts.Unit)
	prec := resolvePrecision(result, opts)
	s := result.Report.Summary.Scale(1 / unit.Scale.Seconds())

	var lines SummaryLines
	lines.Average = fmt.Sprintf("📊 Average time over %d runs: %s %s", s.N, format.FormatFixed(s.Mean, prec), unit.Label)

	wantSpread, wantCV := opts.Spread, opts.Spread
	if result.Workload != nil {
		wantSpread = wantSpread || result.Workload.ReportsSpread()
		wantCV = wantCV || workload.ReportsCV(result.Workload)
	}
	if wantSpread {
		if s.HasSpread {
			lines.StdDev = fmt.Sprintf("Standard deviation %s: %s", unit.Label, format.FormatFixed(s.StdDev, prec))
		} else {
			lines.StdDev = fmt.Sprintf("Standard deviation %s: n/a (needs at least 2 runs)", unit.Label)
		}
	}
	if wantCV {
		if s.HasSpread {
			lines.CV = fmt.Sprintf("CV (%%): %s", format.FormatFixed(s.CV, 2))
		} else {
			lines.CV = "CV (%): n/a (needs at least 2 runs)"
		}
	}
	return lines
}

// DisplayResult writes the summary of one benchmark, preceded by its
// outcome and followed in verbose mode by the per-run samples and memory
// statistics.
func DisplayResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n%s%s%s", ui.ColorBold(), result.Name(), ui.ColorReset())
	if result.Workload != nil {
		fmt.Fprintf(out, " %s(%s)%s", ui.ColorGrey(), result.Workload.Description(), ui.ColorReset())
	}
	fmt.Fprintln(out)

	if o := FormatOutcome(result); o != "" {
		fmt.Fprintf(out, "%s\n", o)
	}

	lines := FormatSummary(result, opts)
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), lines.Average, ui.ColorReset())
	if lines.StdDev != "" {
		fmt.Fprintf(out, "%s\n", lines.StdDev)
	}
	if lines.CV != "" {
		fmt.Fprintf(out, "%s\n", lines.CV)
	}

	if opts.Verbose {
		unit := normalizeUnit(opts.Unit)
		prec := resolvePrecision(result, opts)
		s := result.Report.Summary.Scale(1 / unit.Scale.Seconds())
		if s.N > 0 {
			fmt.Fprintf(out, "Min/Median/Max %s: %s / %s / %s\n", unit.Label,
				format.FormatFixed(s.Min, prec), format.FormatFixed(s.Median, prec), format.FormatFixed(s.Max, prec))
		}
		DisplaySamples(result, unit, prec, out)
		DisplayMemoryStats(result.Report.Memory, out)
	}
}

// FormatOutcome describes what the last run computed, or "" when there is
// nothing to report.
func FormatOutcome(result orchestration.BenchmarkResult) string {
	o := result.Report.Outcome
	switch {
	case o.Primes > 0:
		return fmt.Sprintf("Primes found: %s%s%s (K=%s)", ui.ColorCyan(),
			format.FormatNumberString(fmt.Sprint(o.Primes)), ui.ColorReset(),
			format.FormatNumberString(fmt.Sprint(o.Iterations)))
	case o.T1 != 0 || o.T2 != 0:
		return fmt.Sprintf("Final pair: t1=%s%d%s t2=%s%d%s (K=%s)",
			ui.ColorCyan(), o.T1, ui.ColorReset(), ui.ColorCyan(), o.T2, ui.ColorReset(),
			format.FormatNumberString(fmt.Sprint(o.Iterations)))
	}
	return ""
}

// DisplaySamples lists every run's elapsed time in unit.
func DisplaySamples(result orchestration.BenchmarkResult, unit format.Unit, precision int, out io.Writer) {
	if len(result.Report.Samples) == 0 {
		return
	}
	fmt.Fprintf(out, "Samples %s:\n", unit.Label)
	for i, d := range result.Report.Samples {
		fmt.Fprintf(out, "  Run %d: %s\n", i+1, format.FormatFixed(format.ToUnit(d, unit), precision))
	}
}

// DisplayMemoryStats shows the runtime memory change over one benchmark.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	heap := format.FormatBytes(uint64(absInt64(d.HeapAlloc)))
	if d.HeapAlloc < 0 {
		heap = "-" + heap
	}
	fmt.Fprintf(out, "  Heap change:     %s\n", heap)
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(d.TotalAlloc))
	fmt.Fprintf(out, "  Allocations:     %d\n", d.Mallocs)
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.NumGC)
	if d.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatQuietResult returns the summary values separated by spaces: the
// mean, then the standard deviation and CV when they are reported.
func FormatQuietResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions) string {
	unit := normalizeUnit(opts.Unit)
	prec := resolvePrecision(result, opts)
	s := result.Report.Summary.Scale(1 / unit.Scale.Seconds())
	fields := []string{result.Name(), format.FormatFixed(s.Mean, prec)}
	lines := FormatSummary(result, opts)
	if lines.StdDev != "" && s.HasSpread {
		fields = append(fields, format.FormatFixed(s.StdDev, prec))
	}
	if lines.CV != "" && s.HasSpread {
		fields = append(fields, format.FormatFixed(s.CV, 2))
	}
	return strings.Join(fields, " ")
}

// DisplayQuietResult writes FormatQuietResult on its own line.
func DisplayQuietResult(out io.Writer, result orchestration.BenchmarkResult, opts orchestration.PresentationOptions) {
	fmt.Fprintln(out, FormatQuietResult(result, opts))
}

// PrimePrinter returns an OnPrime callback writing one prime per line to out.
func PrimePrinter(out io.Writer) func(int64) {
	return func(n int64) {
		fmt.Fprintln(out, n)
	}
}
