package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dino-dash/internal/leaderboard"
)

// Leaderboard layout constants
const (
	rankWidth    = 6
	nameWidth    = 20
	scoreWidth   = 10
	fetchTimeout = 5 * time.Second
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// BoardSource lists the top scores. leaderboard.Service, *leaderboard.Async
// and *leaderboard.PlayerBoard implement it.
type BoardSource interface {
	TopScores(ctx context.Context, limit int) ([]leaderboard.Entry, error)
}

// boardMsg carries a finished leaderboard fetch.
type boardMsg struct {
	entries []leaderboard.Entry
	err     error
}

// fetchBoard loads the leaderboard off the update loop.
func fetchBoard(src BoardSource, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		entries, err := src.TopScores(ctx, limit)
		return boardMsg{entries: entries, err: err}
	}
}

// newBoardTable creates a leaderboard table showing up to height rows.
func newBoardTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: rankWidth},
			{Title: "Player", Width: nameWidth},
			{Title: "Score", Width: scoreWidth},
		}),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// boardRows converts entries to table rows, ranked from 1.
func boardRows(entries []leaderboard.Entry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		name := e.PlayerName
		if len([]rune(name)) > nameWidth {
			name = string([]rune(name)[:nameWidth-1]) + "."
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			name,
			fmt.Sprintf("%d", e.Score),
		}
	}
	return rows
}

// boardContent renders the table, or a placeholder while empty or failed.
func boardContent(t table.Model, loaded bool, entries []leaderboard.Entry, err error) string {
	switch {
	case err != nil:
		return errorStyle.Render("Leaderboard unavailable: " + err.Error())
	case !loaded:
		return dimStyle.Italic(true).Render("Loading leaderboard...")
	case len(entries) == 0:
		return dimStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nBe the first!")
	}
	return t.View()
}

// ScoresKeyMap defines the key bindings for the leaderboard screen.
type ScoresKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoresKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoresKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultScoresKeyMap returns default key bindings.
func DefaultScoresKeyMap() ScoresKeyMap {
	return ScoresKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoresModel is the standalone leaderboard screen.
type ScoresModel struct {
	src      BoardSource
	limit    int
	entries  []leaderboard.Entry
	err      error
	loaded   bool
	table    table.Model
	help     help.Model
	keys     ScoresKeyMap
	width    int
	quitting bool
}

// NewScoresModel creates a leaderboard screen listing the top limit scores.
func NewScoresModel(src BoardSource, limit int) ScoresModel {
	if limit <= 0 {
		limit = 10
	}
	return ScoresModel{
		src:   src,
		limit: limit,
		table: newBoardTable(limit),
		help:  help.New(),
		keys:  DefaultScoresKeyMap(),
	}
}

// Init starts the first fetch.
func (m ScoresModel) Init() tea.Cmd {
	return fetchBoard(m.src, m.limit)
}

// Update handles messages for the leaderboard screen.
func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case boardMsg:
		m.loaded = true
		m.entries, m.err = msg.entries, msg.err
		m.table.SetRows(boardRows(m.entries))
		m.table.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.loaded = false
			return m, fetchBoard(m.src, m.limit)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard screen.
func (m ScoresModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("TOP %d", m.limit)))
	b.WriteString("\n\n")
	b.WriteString(panelStyle.Render(boardContent(m.table, m.loaded, m.entries, m.err)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, b.String())
	}
	return b.String()
}

// RunScoreboard runs the leaderboard screen until the user quits.
func RunScoreboard(src BoardSource, limit int) error {
	p := tea.NewProgram(NewScoresModel(src, limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
