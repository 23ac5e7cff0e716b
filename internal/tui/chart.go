package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/microbench/internal/format"
)

const (
	sampleHistory   = 256
	sysStatsHistory = 120
)

// ChartModel plots the per-run samples of the current benchmark, the
// session progress and the host CPU and memory load.
type ChartModel struct {
	samples         *RingBuffer // run times in the display unit
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	averageProgress float64
	eta             time.Duration
	doneIn          time.Duration
	unit            format.Unit
	width           int
	height          int
}

// NewChartModel creates an empty chart.
func NewChartModel(unit format.Unit) ChartModel {
	return ChartModel{
		samples:    NewRingBuffer(sampleHistory),
		cpuHistory: NewRingBuffer(sysStatsHistory),
		memHistory: NewRingBuffer(sysStatsHistory),
		unit:       unit,
	}
}

// SetSize updates dimensions and resizes the sparkline buffers to the width.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	if spark := w - 14; spark > 0 {
		c.cpuHistory.Resize(spark)
		c.memHistory.Resize(spark)
	}
}

// StartBenchmark clears the sample plot when a new benchmark begins.
func (c *ChartModel) StartBenchmark() {
	c.samples.Reset()
}

// AddSample records one run time and the session progress.
func (c *ChartModel) AddSample(sample time.Duration, averageProgress float64, eta time.Duration) {
	c.samples.Push(format.ToUnit(sample, c.unit))
	c.averageProgress = averageProgress
	c.eta = eta
}

// UpdateSysStats records a host load sample.
func (c *ChartModel) UpdateSysStats(cpu, mem float64) {
	c.cpuHistory.Push(cpu)
	c.memHistory.Push(mem)
}

// SetDone freezes the chart with the total session duration.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.averageProgress = 1
	c.eta = 0
	c.doneIn = elapsed
}

// Reset clears all history.
func (c *ChartModel) Reset() {
	c.samples.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
	c.averageProgress = 0
	c.eta = 0
	c.doneIn = 0
}

func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 20
	if barWidth < 4 {
		return ""
	}
	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf(" %s %5.1f%%", bar, c.averageProgress*100)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(metricLabelStyle.Render(" Run times"))

	values, lo, hi := Rescale(c.samples.Slice())
	if len(values) > 0 {
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf(" (%s..%s %s)",
			format.FormatFixed(lo, 3), format.FormatFixed(hi, 3), c.unit.Label)))
	}
	b.WriteString("\n")

	// Rows left for the plot after title, progress, ETA and two sparklines.
	reserved := 4
	showSys := c.height >= 10
	if showSys {
		reserved += 2
	}
	plotRows := c.height - 2 - reserved
	plotWidth := c.width - 4
	if plotRows > 0 && plotWidth > 0 {
		for _, row := range RenderBrailleChart(values, plotWidth, plotRows) {
			b.WriteString(" " + samplePlotStyle.Render(row) + "\n")
		}
	}

	b.WriteString(c.renderProgressBar())
	b.WriteString("\n")
	if c.doneIn > 0 {
		b.WriteString(metricLabelStyle.Render(" Done in ") + metricValueStyle.Render(format.FormatExecutionDuration(c.doneIn)))
	} else {
		b.WriteString(metricLabelStyle.Render(" ETA: ") + metricValueStyle.Render(format.FormatETA(c.eta)))
	}

	if showSys {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(" CPU %5.1f%% %s\n", c.cpuHistory.Last(), cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice()))))
		b.WriteString(fmt.Sprintf(" MEM %5.1f%% %s", c.memHistory.Last(), memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice()))))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(b.String())
}
