// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatSummary].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteReportToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/microbench/internal/metrics"
	"github.com/agbru/microbench/internal/orchestration"
	"github.com/agbru/microbench/internal/stats"
	"github.com/agbru/microbench/internal/sysmon"
	"github.com/agbru/microbench/internal/workload"
)

// ReportSettings records the settings a report was produced with.
type ReportSettings struct {
	Workload   string `json:"workload"`
	Runs       int    `json:"runs"`
	Iterations uint64 `json:"iterations,omitempty"`
	GCMode     string `json:"gc_mode,omitempty"`
	PinCPU     int    `json:"pin_cpu"`
}

// BenchmarkReport is the JSON form of one benchmark. Durations are in
// nanoseconds and the summary is in seconds.
type BenchmarkReport struct {
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Runs        int                 `json:"runs"`
	Iterations  uint64              `json:"iterations"`
	SamplesNs   []int64             `json:"samples_ns"`
	Summary     stats.Summary       `json:"summary_seconds"`
	Outcome     workload.Outcome    `json:"outcome"`
	Memory      metrics.MemoryDelta `json:"memory"`
	ElapsedNs   int64               `json:"elapsed_ns"`
	Error       string              `json:"error,omitempty"`
}

// Report is the document written by --output.
type Report struct {
	Version     string            `json:"version"`
	GeneratedAt time.Time         `json:"generated_at"`
	Host        sysmon.Host       `json:"host"`
	Settings    ReportSettings    `json:"settings"`
	Benchmarks  []BenchmarkReport `json:"benchmarks"`
}

// BuildReport converts results into a Report.
func BuildReport(version string, generatedAt time.Time, host sysmon.Host, settings ReportSettings, results []orchestration.BenchmarkResult) Report {
	r := Report{
		Version:     version,
		GeneratedAt: generatedAt.UTC(),
		Host:        host,
		Settings:    settings,
		Benchmarks:  make([]BenchmarkReport, 0, len(results)),
	}
	for _, res := range results {
		b := BenchmarkReport{
			Name:       res.Name(),
			Runs:       res.Report.Runs,
			Iterations: res.Report.Iterations,
			SamplesNs:  make([]int64, len(res.Report.Samples)),
			Summary:    res.Report.Summary,
			Outcome:    res.Report.Outcome,
			Memory:     res.Report.Memory,
			ElapsedNs:  res.Report.Elapsed.Nanoseconds(),
		}
		if res.Workload != nil {
			b.Description = res.Workload.Description()
		}
		for i, d := range res.Report.Samples {
			b.SamplesNs[i] = d.Nanoseconds()
		}
		if res.Err != nil {
			b.Error = res.Err.Error()
		}
		r.Benchmarks = append(r.Benchmarks, b)
	}
	return r
}

// WriteReport encodes r as indented JSON.
func WriteReport(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteReportToFile writes r to path, creating parent directories. An empty
// path is a no-op.
func WriteReportToFile(path string, r Report) error {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteReport(file, r); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return file.Close()
}
