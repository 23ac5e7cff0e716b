package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/microbench/internal/format"
	"github.com/agbru/microbench/internal/stats"
)

// MetricsModel displays runtime memory statistics and the running summary
// of the current benchmark.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	workload string
	samples  []float64 // run times of the current benchmark, in unit
	summary  stats.Summary
	unit     format.Unit

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel(unit format.Unit) MetricsModel {
	return MetricsModel{unit: unit}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// AddSample folds one run into the running summary. A new workload name
// starts a new summary.
func (m *MetricsModel) AddSample(msg ProgressMsg) {
	if msg.Workload != m.workload {
		m.workload = msg.Workload
		m.samples = m.samples[:0]
	}
	m.samples = append(m.samples, format.ToUnit(msg.Sample, m.unit))
	m.summary = stats.Summarize(m.samples)
}

// Summary returns the running summary of the current benchmark.
func (m MetricsModel) Summary() stats.Summary { return m.summary }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	heapStr := metricValueStyle.Render(format.FormatBytes(m.alloc) + " / " + format.FormatBytes(m.heapInuse))
	gcPauseStr := metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6))
	pipe := metricLabelStyle.Render(" | ")
	rows.WriteString(fmt.Sprintf("  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"), heapStr,
		pipe,
		metricLabelStyle.Render("GC:"), gcPauseStr))

	colWidth := (m.width - 6) / 2
	dash := "-"
	mean, sd, cv := dash, dash, dash
	if m.summary.N > 0 {
		mean = format.FormatFixed(m.summary.Mean, 3) + " " + m.unit.Label
	}
	if m.summary.HasSpread {
		sd = format.FormatFixed(m.summary.StdDev, 3) + " " + m.unit.Label
		cv = format.FormatFixed(m.summary.CV, 2) + "%"
	}

	leftCol := []string{
		formatMetricCol("Runs:", fmt.Sprintf("%d", m.summary.N), colWidth),
		formatMetricCol("Mean:", mean, colWidth),
	}
	rightCol := []string{
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol("Stdev:", sd, colWidth),
	}
	if m.height >= 7 {
		leftCol = append(leftCol, formatMetricCol("CV:", cv, colWidth))
		minMax := dash
		if m.summary.N > 0 {
			minMax = format.FormatFixed(m.summary.Min, 3) + "/" + format.FormatFixed(m.summary.Max, 3)
		}
		rightCol = append(rightCol, formatMetricCol("Min/Max:", minMax, colWidth))
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
