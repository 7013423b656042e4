package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dino-dash/internal/leaderboard"
)

type failingBoard struct{}

func (failingBoard) TopScores(context.Context, int) ([]leaderboard.Entry, error) {
	return nil, errors.New("database is locked")
}

func TestScoresModelShowsEntries(t *testing.T) {
	board := leaderboard.NewMemory()
	ctx := context.Background()
	for _, s := range []struct {
		name  string
		score int
	}{{"Ada", 120}, {"Grace", 300}} {
		if err := board.SubmitScore(ctx, s.name, strings.ToLower(s.name)+"@example.com", s.score); err != nil {
			t.Fatal(err)
		}
	}

	m := NewScoresModel(board, 0)
	if !strings.Contains(m.View(), "Loading") {
		t.Error("view should show loading before the first fetch")
	}

	next, _ := m.Update(m.Init()())
	m = next.(ScoresModel)
	view := m.View()
	if !strings.Contains(view, "TOP 10") {
		t.Error("limit should default to 10")
	}
	if strings.Index(view, "Grace") > strings.Index(view, "Ada") {
		t.Error("higher score should be listed first")
	}
}

func TestScoresModelEmptyAndError(t *testing.T) {
	m := NewScoresModel(leaderboard.NewMemory(), 5)
	next, _ := m.Update(m.Init()())
	if !strings.Contains(next.View(), "No scores recorded yet") {
		t.Error("empty board should show a placeholder")
	}

	m = NewScoresModel(failingBoard{}, 5)
	next, _ = m.Update(m.Init()())
	if !strings.Contains(next.View(), "database is locked") {
		t.Error("fetch error should be shown")
	}
}

func TestScoresModelRefreshAndQuit(t *testing.T) {
	m := NewScoresModel(leaderboard.NewMemory(), 5)
	next, _ := m.Update(m.Init()())
	m = next.(ScoresModel)

	next, cmd := m.Update(runeKey("r"))
	m = next.(ScoresModel)
	if cmd == nil || m.loaded {
		t.Error("refresh should refetch the board")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil || next.View() != "" {
		t.Error("esc should quit")
	}
}
