package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-dash/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapAction(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionJump},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump},
		{"w", runeKey("w"), core.ActionJump},
		{"p", runeKey("p"), core.ActionPause},
		{"r", runeKey("r"), core.ActionRestart},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionRestart},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{"b", runeKey("b"), core.ActionBack},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"unbound", runeKey("x"), core.ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := km.Action(tt.msg); got != tt.want {
				t.Errorf("Action(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestDebouncer(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDebouncer(100 * time.Millisecond)

	steps := []struct {
		at   time.Duration
		want bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{99 * time.Millisecond, false},
		{100 * time.Millisecond, true},
		{150 * time.Millisecond, false},
		{250 * time.Millisecond, true},
	}

	for _, s := range steps {
		if got := d.Allow(t0.Add(s.at)); got != s.want {
			t.Errorf("Allow(+%v) = %v, expected %v", s.at, got, s.want)
		}
	}

	d.Reset()
	if !d.Allow(t0.Add(260 * time.Millisecond)) {
		t.Error("Allow after Reset should pass")
	}
}

func TestDebouncerDisabled(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := NewDebouncer(0)

	for i := 0; i < 5; i++ {
		if !d.Allow(t0) {
			t.Fatal("zero window should let every trigger through")
		}
	}
}
