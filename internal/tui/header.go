package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/microbench/internal/format"
)

// HeaderModel renders the top bar: title, version, current workload and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	workload  string
	run, runs int
	width     int
}

// NewHeaderModel creates a new header.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
	h.workload = ""
	h.run, h.runs = 0, 0
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// SetRun records the workload and run counter shown on the right.
func (h *HeaderModel) SetRun(workload string, run, runs int) {
	h.workload = workload
	h.run, h.runs = run, runs
}

// Elapsed returns the time since the session started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "microbench"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")
	elapsed := elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))

	leftPart := title + pipe + elapsed
	rightPart := ""
	if h.workload != "" {
		rightPart = logWorkloadStyle.Render(fmt.Sprintf("%s run %d/%d", h.workload, h.run, h.runs))
	}

	innerWidth := h.width - 2
	if innerWidth < 0 {
		innerWidth = 0
	}
	gap := innerWidth - lipgloss.Width(leftPart) - lipgloss.Width(rightPart)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(h.width).Render(leftPart + spaces(gap) + rightPart)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
