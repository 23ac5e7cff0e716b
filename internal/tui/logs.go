package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/microbench/internal/cli"
	"github.com/agbru/microbench/internal/config"
	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/orchestration"
)

// maxLogEntries bounds the run log; the oldest entries are dropped first.
const maxLogEntries = 2000

// LogsModel is the scrollable run log on the left of the dashboard.
type LogsModel struct {
	workloads []string
	entries   []string
	offset    int // lines scrolled up from the bottom
	keymap    KeyMap
	unit      format.Unit
	width     int
	height    int
}

// NewLogsModel creates a log for the given workloads.
func NewLogsModel(workloads []string, unit format.Unit) LogsModel {
	return LogsModel{workloads: workloads, keymap: DefaultKeyMap(), unit: unit}
}

// SetSize updates dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// Reset clears the log, keeping the configuration header.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.offset = 0
}

func (l *LogsModel) add(line string) {
	stamp := logTimeStyle.Render(time.Now().Format("15:04:05"))
	l.entries = append(l.entries, stamp+" "+line)
	if over := len(l.entries) - maxLogEntries; over > 0 {
		l.entries = l.entries[over:]
	}
}

// AddExecutionConfig logs the session parameters.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	iterations := "default"
	if cfg.Iterations > 0 {
		iterations = format.FormatNumberString(fmt.Sprint(cfg.Iterations))
	}
	l.add(fmt.Sprintf("Workloads: %s", logWorkloadStyle.Render(strings.Join(l.workloads, ", "))))
	l.add(fmt.Sprintf("Runs: %d, iterations: %s, GC: %s, timeout: %s", cfg.Runs, iterations, cfg.GCMode, cfg.Timeout))
}

// AddProgressEntry logs one completed run.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	l.add(fmt.Sprintf("%s run %s: %s",
		logWorkloadStyle.Render(msg.Workload),
		logProgressStyle.Render(fmt.Sprintf("%d/%d", msg.Run, msg.Runs)),
		format.FormatFixed(format.ToUnit(msg.Sample, l.unit), 3)+" "+l.unit.Label))
}

// AddResults logs the comparison of an "all" session.
func (l *LogsModel) AddResults(results []orchestration.BenchmarkResult, opts orchestration.PresentationOptions) {
	l.add("--- Comparison ---")
	for _, r := range results {
		if r.Err != nil {
			l.add(logErrorStyle.Render(fmt.Sprintf("%s: %v", r.Name(), r.Err)))
			continue
		}
		l.add(logSuccessStyle.Render(cli.FormatQuietResult(r, opts)))
	}
}

// AddFinalResult logs the summary lines of one benchmark.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	lines := cli.FormatSummary(msg.Result, msg.Options)
	l.add(logWorkloadStyle.Render(msg.Result.Name()))
	if o := outcomeLine(msg.Result); o != "" {
		l.add(metricValueStyle.Render(o))
	}
	for _, s := range []string{lines.Average, lines.StdDev, lines.CV} {
		if s != "" {
			l.add(logSuccessStyle.Render(s))
		}
	}
}

// outcomeLine is the uncoloured outcome of a benchmark; the log applies its
// own lipgloss styles.
func outcomeLine(result orchestration.BenchmarkResult) string {
	o := result.Report.Outcome
	k := format.FormatNumberString(fmt.Sprint(o.Iterations))
	switch {
	case o.Primes > 0:
		return fmt.Sprintf("Primes found: %s (K=%s)", format.FormatNumberString(fmt.Sprint(o.Primes)), k)
	case o.T1 != 0 || o.T2 != 0:
		return fmt.Sprintf("Final pair: t1=%d t2=%d (K=%s)", o.T1, o.T2, k)
	}
	return ""
}

// AddError logs a failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Len returns the number of entries.
func (l LogsModel) Len() int { return len(l.entries) }

// Update scrolls the log.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	page := l.height - 2
	if page < 1 {
		page = 1
	}
	switch {
	case key.Matches(msg, l.keymap.Up):
		l.offset++
	case key.Matches(msg, l.keymap.Down):
		l.offset--
	case key.Matches(msg, l.keymap.PageUp):
		l.offset += page
	case key.Matches(msg, l.keymap.PageDown):
		l.offset -= page
	}
	maxOffset := len(l.entries) - page
	if l.offset > maxOffset {
		l.offset = maxOffset
	}
	if l.offset < 0 {
		l.offset = 0
	}
}

// visible returns the entries that fit in n lines at the current offset.
func (l LogsModel) visible(n int) []string {
	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	end := len(l.entries) - l.offset
	if end < 0 {
		end = 0
	}
	start := end - n
	if start < 0 {
		start = 0
	}
	return l.entries[start:end]
}

// renderToHeight renders the panel with exactly height rows.
func (l LogsModel) renderToHeight(height int) string {
	inner := height - 2
	if inner < 1 {
		inner = 1
	}
	return panelStyle.
		Width(l.width - 2).
		Height(inner).
		Render(strings.Join(l.visible(inner), "\n"))
}
