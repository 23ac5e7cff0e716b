package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the status indicator and key help.
type FooterModel struct {
	help   help.Model
	keymap KeyMap
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer showing keymap's short help.
func NewFooterModel(keymap KeyMap) FooterModel {
	h := help.New()
	h.Styles.ShortKey = footerKeyStyle
	h.Styles.ShortDesc = footerDescStyle
	h.Styles.ShortSeparator = footerDescStyle
	return FooterModel{help: h, keymap: keymap}
}

func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.failed = e }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
	f.help.Width = w
}

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "FAILED"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	var status string
	switch f.Status() {
	case "FAILED":
		status = statusErrorStyle.Render(" FAILED ")
	case "DONE":
		status = statusDoneStyle.Render(" DONE ")
	case "PAUSED":
		status = statusPausedStyle.Render(" PAUSED ")
	default:
		status = statusRunningStyle.Render(" RUNNING ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, status, " ", f.help.View(f.keymap))
}
