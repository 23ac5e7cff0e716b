package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/microbench/internal/errors"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/ui"
	"github.com/agbru/microbench/internal/workload"
)

func TestFormatSummary(t *testing.T) {
	t.Parallel()
	ms := orchestration.PresentationOptions{Unit: format.Milliseconds, Precision: -1}

	tests := []struct {
		name   string
		result orchestration.BenchmarkResult
		opts   orchestration.PresentationOptions
		want   SummaryLines
	}{
		{
			name:   "prime scan reports the mean only",
			result: newResult(&workload.PrimeScan{}, workload.Outcome{Iterations: 100000, Primes: 9592}, 1, 2, 3),
			opts:   ms,
			want:   SummaryLines{Average: "📊 Average time over 3 runs: 2.00 ms"},
		},
		{
			name:   "prime count adds the standard deviation",
			result: newResult(workload.PrimeCount{}, workload.Outcome{Iterations: 1000, Primes: 168}, 1, 2, 3),
			opts:   ms,
			want: SummaryLines{
				Average: "📊 Average time over 3 runs: 2.00 ms",
				StdDev:  "Standard deviation ms: 1.00",
			},
		},
		{
			name:   "fibonacci reports stdev and CV with three decimals",
			result: newResult(&workload.Fibonacci{}, workload.Outcome{Iterations: 10, T1: 55, T2: 89}, 1, 2, 3),
			opts:   ms,
			want: SummaryLines{
				Average: "📊 Average time over 3 runs: 2.000 ms",
				StdDev:  "Standard deviation ms: 1.000",
				CV:      "CV (%): 50.00",
			},
		},
		{
			name:   "spread flag forces every line",
			result: newResult(&workload.PrimeScan{}, workload.Outcome{Iterations: 10, Primes: 4}, 1, 2, 3),
			opts:   orchestration.PresentationOptions{Unit: format.Milliseconds, Precision: -1, Spread: true},
			want: SummaryLines{
				Average: "📊 Average time over 3 runs: 2.00 ms",
				StdDev:  "Standard deviation ms: 1.00",
				CV:      "CV (%): 50.00",
			},
		},
		{
			name:   "seconds with explicit precision",
			result: newResult(&workload.PrimeScan{}, workload.Outcome{Iterations: 10, Primes: 4}, 1500, 2500),
			opts:   orchestration.PresentationOptions{Unit: format.Seconds, Precision: 1},
			want:   SummaryLines{Average: "📊 Average time over 2 runs: 2.0 seconds"},
		},
		{
			name:   "single run leaves the spread undefined",
			result: newResult(&workload.Fibonacci{}, workload.Outcome{Iterations: 10, T1: 55, T2: 89}, 4),
			opts:   ms,
			want: SummaryLines{
				Average: "📊 Average time over 1 runs: 4.000 ms",
				StdDev:  "Standard deviation ms: n/a (needs at least 2 runs)",
				CV:      "CV (%): n/a (needs at least 2 runs)",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatSummary(tt.result, tt.opts); got != tt.want {
				t.Errorf("FormatSummary() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDefaultPrecision(t *testing.T) {
	t.Parallel()
	tests := []struct {
		w    workload.Workload
		unit format.Unit
		want int
	}{
		{&workload.PrimeScan{}, format.Milliseconds, 2},
		{&workload.PrimeScan{}, format.Seconds, 4},
		{&workload.PrimeScan{}, format.Microseconds, 0},
		{&workload.Fibonacci{}, format.Milliseconds, 3},
		{&workload.Fibonacci{}, format.Seconds, 5},
		{nil, format.Milliseconds, 2},
	}
	for _, tt := range tests {
		if got := DefaultPrecision(tt.w, tt.unit); got != tt.want {
			t.Errorf("DefaultPrecision(%v, %s) = %d, want %d", tt.w, tt.unit.Name, got, tt.want)
		}
	}
}

func TestDisplayResult(t *testing.T) {
	ui.InitTheme(true)
	result := newResult(&workload.Fibonacci{}, workload.Outcome{Iterations: 10, T1: 55, T2: 89}, 1, 2, 3)

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{Unit: format.Milliseconds, Precision: -1, Verbose: true}, &buf)
	out := buf.String()
	for _, want := range []string{
		"fibonacci",
		"Final pair: t1=55 t2=89 (K=10)",
		"📊 Average time over 3 runs: 2.000 ms",
		"Standard deviation ms: 1.000",
		"CV (%): 50.00",
		"Run 3: 3.000",
		"Memory Stats:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPresentResultQuiet(t *testing.T) {
	ui.InitTheme(true)
	result := newResult(workload.PrimeCount{}, workload.Outcome{Iterations: 1000, Primes: 168}, 1, 2, 3)

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentResult(result, orchestration.PresentationOptions{Unit: format.Milliseconds, Precision: -1, Quiet: true}, &buf)
	if got, want := buf.String(), "prime-count 2.00 1.00\n"; got != want {
		t.Errorf("quiet output = %q, want %q", got, want)
	}
}

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(true)
	results := []orchestration.BenchmarkResult{
		newResult(workload.Sieve{}, workload.Outcome{Iterations: 1000, Primes: 168}, 1, 2, 3),
		newResult(&workload.PrimeScan{}, workload.Outcome{Iterations: 1000, Primes: 168}, 4),
	}
	results[1].Err = errors.New("boom")

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, orchestration.PresentationOptions{Unit: format.Milliseconds, Precision: -1}, &buf)
	out := buf.String()
	for _, want := range []string{"Comparison Summary", "Workload", "Mean ms", "sieve", "2.00", "50.00", "✅ Success", "❌ Failure (boom)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	header, row := lines[1], lines[2]
	if strings.Index(header, "Status") != strings.Index(row, "✅") {
		t.Errorf("status column misaligned:\n%s\n%s", header, row)
	}
}

func TestHandleError(t *testing.T) {
	ui.InitTheme(true)
	tests := []struct {
		err  error
		want int
	}{
		{nil, apperrors.ExitSuccess},
		{apperrors.MismatchError{N: 25, Got: true, Want: false, Oracle: "trial-division"}, apperrors.ExitErrorMismatch},
		{apperrors.BenchmarkError{Workload: "sieve", Cause: errors.New("x")}, apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if got := (CLIResultPresenter{}).HandleError(tt.err, time.Millisecond, &buf); got != tt.want {
			t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
