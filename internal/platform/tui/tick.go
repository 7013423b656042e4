// Package tui hosts the runner in a Bubble Tea program: the refresh loop
// that drives the simulation, key mapping, terminal rendering and the
// leaderboard views, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is one display refresh, stamped with its time.
type FrameMsg time.Time

// frameCmd schedules the next refresh at the given rate.
func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
