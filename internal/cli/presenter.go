package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/progress"
	"github.com/agbru/microbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running benchmarks.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numBenchmarks int, out io.Writer) {
	DisplayProgress(wg, progressChan, numBenchmarks, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter and
// orchestration.ErrorHandler for terminal output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays one row per benchmark with its mean,
// standard deviation and CV. Uses manual padding because the cells carry
// ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	headers := []string{"Workload", "Mean " + opts.Unit.Label, "Stdev", "CV (%)"}
	rows := make([][]string, len(results))
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = displayWidth(h)
	}
	for i, res := range results {
		s := res.Report.Summary.Scale(1 / opts.Unit.Scale.Seconds())
		prec := resolvePrecision(res, opts)
		row := []string{res.Name(), "-", "-", "-"}
		if s.N > 0 {
			row[1] = format.FormatFixed(s.Mean, prec)
		}
		if s.HasSpread {
			row[2] = format.FormatFixed(s.StdDev, prec)
			row[3] = format.FormatFixed(s.CV, 2)
		}
		for j, cell := range row {
			if w := displayWidth(cell); w > widths[j] {
				widths[j] = w
			}
		}
		rows[i] = row
	}

	for i, h := range headers {
		fmt.Fprintf(out, "%s%s%s%s   ", ui.ColorUnderline(), h, ui.ColorReset(), padRight("", widths[i]-displayWidth(h)))
	}
	fmt.Fprintf(out, "%sStatus%s\n", ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		row := rows[i]
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s%s   %s\n",
			ui.ColorBlue(), row[0], ui.ColorReset(), padRight("", widths[0]-displayWidth(row[0])),
			ui.ColorYellow(), row[1], ui.ColorReset(), padRight("", widths[1]-displayWidth(row[1])),
			row[2], padRight("", widths[2]-displayWidth(row[2])),
			row[3], padRight("", widths[3]-displayWidth(row[3])),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// displayWidth counts runes, which is enough for the labels used here.
func displayWidth(s string) int {
	return len([]rune(s))
}

// PresentResult displays the summary lines of one benchmark.
func (CLIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		DisplayQuietResult(out, result, opts)
		return
	}
	DisplayResult(result, opts, out)
}

// HandleError prints err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleBenchmarkError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
