package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dino-dash/internal/audio"
	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
	"github.com/vovakirdan/dino-dash/internal/games/runner"
	"github.com/vovakirdan/dino-dash/internal/leaderboard"
)

const helpRows = 1

// Options configures a play session.
type Options struct {
	Config    config.RunnerConfig
	Identity  leaderboard.Identity
	Board     BoardSource                // Leaderboard shown after game over; may be nil
	Submitter runner.ScoreSubmitter      // May be nil
	Audio     audio.Sink                 // May be nil
	Watcher   *config.Watcher            // Config reloads, applied on restart; may be nil
	Override  func(*config.RunnerConfig) // Reapplied to reloaded configs
	Logger    *log.Logger
	FPS       int
	Seed      int64 // 0 picks a time-based seed
	Width     int   // Initial terminal size; 0 waits for the first resize
	Height    int
	Debounce  time.Duration
}

// configMsg carries a reloaded config.
type configMsg config.RunnerConfig

// configErrMsg carries a failed reload.
type configErrMsg struct{ err error }

// Model is the Bubble Tea model for one player's runner session.
type Model struct {
	opts    Options
	game    *runner.Game
	driver  *runner.Driver
	surface *screenSurface
	keys    KeyMap
	help    help.Model
	jump    Debouncer
	input   core.InputFrame
	state   core.GameState

	board          table.Model
	entries        []leaderboard.Entry
	boardErr       error
	boardLoaded    bool
	boardRequested bool

	width    int
	height   int
	quitting bool
}

// NewModel creates a session and starts its first round.
func NewModel(opts Options) Model {
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultJumpDebounce
	}

	gameOpts := []runner.Option{runner.WithSeed(opts.Seed)}
	if opts.Audio != nil {
		gameOpts = append(gameOpts, runner.WithAudio(opts.Audio))
	}
	if opts.Submitter != nil {
		gameOpts = append(gameOpts, runner.WithSubmitter(opts.Submitter, opts.Identity))
	}
	game := runner.New(opts.Config, gameOpts...)

	surface := newScreenSurface(opts.Width, core.Max(opts.Height-helpRows, 0))
	h := help.New()
	h.Width = opts.Width

	return Model{
		opts:    opts,
		game:    game,
		driver:  runner.NewDriver(game, surface),
		surface: surface,
		keys:    DefaultKeyMap(),
		help:    h,
		jump:    NewDebouncer(opts.Debounce),
		input:   core.NewInputFrame(),
		state:   game.State(),
		board:   newBoardTable(opts.Config.Leaderboard.Limit),
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Init starts the refresh loop and the config watch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.opts.FPS), waitForConfig(m.opts.Watcher))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg, time.Now())

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.queueJump(time.Now())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.surface.Resize(msg.Width, core.Max(msg.Height-helpRows, 0))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame(time.Time(msg))

	case tea.ResumeMsg:
		m.driver.Resync()
		return m, nil

	case boardMsg:
		m.boardLoaded = true
		m.entries, m.boardErr = msg.entries, msg.err
		m.board.SetRows(boardRows(m.entries))
		m.board.GotoTop()
		if msg.err != nil {
			m.opts.Logger.Warn("could not load leaderboard", "error", msg.err)
		}
		return m, nil

	case configMsg:
		cfg := config.RunnerConfig(msg)
		if m.opts.Override != nil {
			m.opts.Override(&cfg)
		}
		m.game.SetConfig(cfg)
		m.opts.Logger.Info("config reloaded, applies next round")
		return m, waitForConfig(m.opts.Watcher)

	case configErrMsg:
		m.opts.Logger.Warn("config reload failed", "error", msg.err)
		return m, waitForConfig(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg, now time.Time) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit, core.ActionBack:
		m.game.Close()
		m.quitting = true
		return m, tea.Quit

	case core.ActionJump:
		m.queueJump(now)

	case core.ActionPause:
		if !m.state.GameOver {
			m.input.Set(core.ActionPause)
		}

	case core.ActionRestart:
		if m.state.GameOver {
			m.restart()
		}
	}

	return m, nil
}

// queueJump adds a jump to the next frame unless it repeats too quickly.
func (m *Model) queueJump(now time.Time) {
	if m.state.GameOver || m.state.Paused {
		return
	}
	if m.jump.Allow(now) {
		m.input.Set(core.ActionJump)
	}
}

func (m *Model) restart() {
	m.game.Restart()
	m.state = m.game.State()
	m.input.Clear()
	m.jump.Reset()

	m.entries = nil
	m.boardErr = nil
	m.boardLoaded = false
	m.boardRequested = false
	m.board.SetRows(nil)
}

// handleFrame runs one refresh and fetches the leaderboard once per round
// after game over.
func (m Model) handleFrame(now time.Time) (tea.Model, tea.Cmd) {
	res := m.driver.Frame(now, m.input)
	m.input.Clear()
	m.state = res.State

	cmds := []tea.Cmd{frameCmd(m.opts.FPS)}
	if m.state.GameOver && !m.boardRequested && m.opts.Board != nil {
		m.boardRequested = true
		cmds = append(cmds, fetchBoard(m.opts.Board, m.opts.Config.Leaderboard.Limit))
	}
	return m, tea.Batch(cmds...)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.GameOver {
		return m.gameOverView()
	}
	return m.surface.View() + "\n" + dimStyle.Render(m.help.View(m.keys))
}

func (m Model) gameOverView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Final score: %d", m.state.Score)))
	if name := m.opts.Identity.Name; name != "" {
		b.WriteString(dimStyle.Render("  (" + name + ")"))
	}
	b.WriteString("\n\n")

	if m.opts.Board != nil {
		b.WriteString(boardContent(m.board, m.boardLoaded, m.entries, m.boardErr))
		b.WriteString("\n\n")
	}
	b.WriteString(dimStyle.Render("r restart • q quit"))

	panel := panelStyle.Padding(1, 3).Render(b.String())
	if m.width <= 0 || m.height <= 0 {
		return panel
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}

// Game returns the hosted game.
func (m Model) Game() *runner.Game {
	return m.game
}

// waitForConfig blocks on the watcher until the next reload or error.
// Returns nil once the watcher is closed.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return nil
			}
			return configMsg(cfg)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return configErrMsg{err: err}
		}
	}
}

// Run plays until the user quits, then closes the game.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.game.Close()
	}
	return err
}
