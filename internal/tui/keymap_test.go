package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
)

func TestDefaultKeyMap_Matches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"space pauses", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, km.Pause},
		{"p pauses", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")}, km.Pause},
		{"r restarts", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, km.Reset},
		{"k scrolls up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, km.Up},
		{"down scrolls down", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"pgdown pages", tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match binding %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestDefaultKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	short := km.ShortHelp()
	if len(short) == 0 || !slices.Contains(short[0].Keys(), "q") {
		t.Errorf("short help should lead with quit, got %v", short)
	}

	var total int
	for _, group := range km.FullHelp() {
		for _, b := range group {
			if b.Help().Desc == "" {
				t.Errorf("binding %v has no help text", b.Keys())
			}
			total++
		}
	}
	if total != 7 {
		t.Errorf("full help lists %d bindings, want 7", total)
	}
}
