package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-dash/internal/core"
)

// DefaultJumpDebounce drops repeated jump presses inside this window.
// Terminal key repeat would otherwise burn the double jump instantly.
const DefaultJumpDebounce = 120 * time.Millisecond

// KeyMap defines the in-game key bindings.
type KeyMap struct {
	Jump    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Pause, k.Restart},
		{k.Back, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/up", "jump"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "leave"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key press to a game action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}

// Debouncer lets one trigger through per window.
type Debouncer struct {
	window time.Duration
	last   time.Time
	fired  bool
}

// NewDebouncer creates a debouncer. A non-positive window lets everything through.
func NewDebouncer(window time.Duration) Debouncer {
	return Debouncer{window: window}
}

// Allow reports whether a trigger at now passes. Rejected triggers do not
// extend the window.
func (d *Debouncer) Allow(now time.Time) bool {
	if d.fired && d.window > 0 && now.Sub(d.last) < d.window {
		return false
	}
	d.fired = true
	d.last = now
	return true
}

// Reset forgets the last trigger.
func (d *Debouncer) Reset() {
	d.fired = false
}
