package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dino-dash/internal/audio"
	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/leaderboard"
	"github.com/vovakirdan/dino-dash/internal/platform/tui"
	"github.com/vovakirdan/dino-dash/internal/storage"
)

var (
	flagName       string
	flagEmail      string
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagNoWatch    bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start playing. Your name and email identify you on the leaderboard;
pass them as flags or set RUNNER_NAME and RUNNER_EMAIL (a .env file works).

Controls:
  Space/Up/Click - Jump (again in mid-air for a double jump)
  P              - Pause
  R/Enter        - Restart (after game over)
  Esc/B          - Leave
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

The config file is watched while playing; edits apply from the next round.

Examples:
  runner play --name Ada --email ada@example.com
  runner play --difficulty hard
  runner play --config ./my-runner.yaml --mute`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (default $RUNNER_NAME)")
	playCmd.Flags().StringVar(&flagEmail, "email", "", "Player email (default $RUNNER_EMAIL)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound and music")
	playCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload the config file while playing")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	id, err := leaderboard.Identity{
		Name:  envDefault(cmd, "name", flagName, "RUNNER_NAME"),
		Email: envDefault(cmd, "email", flagEmail, "RUNNER_EMAIL"),
	}.Normalize()
	if err != nil {
		return fmt.Errorf("%w (use --name/--email or RUNNER_NAME/RUNNER_EMAIL)", err)
	}

	preset := config.ParsePreset(flagDifficulty)
	if flagDifficulty != "" && preset == "" {
		return fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", flagDifficulty)
	}
	override := func(cfg *config.RunnerConfig) {
		config.ApplyPreset(cfg, preset)
		if flagMute {
			cfg.Audio.Enabled = false
		}
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return err
	}
	override(&cfg)

	// The alternate screen owns stdout, so logs go to a file
	logger, closeLog := openLog()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("could not open scores database: %w", err)
	}
	defer store.Close()

	scores := leaderboard.NewAsync(
		leaderboard.NewStoreService(store),
		time.Duration(cfg.Leaderboard.SubmitTimeout*float64(time.Second)),
		logger,
	)

	var sink audio.Sink = audio.Nop{}
	engine := audio.NewEngine(cfg.Audio)
	if err := engine.Init(); err != nil {
		logger.Warn("audio disabled", "error", err)
	} else if engine.Enabled() {
		sink = engine
		defer engine.Close()
	}

	var watcher *config.Watcher
	if path := config.Locate(flagConfig); path != "" && !flagNoWatch {
		if watcher, err = config.WatchFile(path); err != nil {
			logger.Warn("config hot reload disabled", "path", path, "error", err)
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logger.Info("starting round", "player", id.Name, "difficulty", preset)
	runErr := tui.Run(tui.Options{
		Config:    cfg,
		Identity:  id,
		Board:     scores.Board(id),
		Submitter: scores,
		Audio:     sink,
		Watcher:   watcher,
		Override:  override,
		Logger:    logger,
		FPS:       flagFPS,
		Seed:      flagSeed,
		Width:     width,
		Height:    height,
	})

	// Let the final submission land before the database closes
	scores.Wait()

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// openLog opens ~/.arcade/runner.log for appending, or discards logs when
// that is impossible.
func openLog() (*log.Logger, func()) {
	opts := log.Options{ReportTimestamp: true, Prefix: "runner"}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "runner.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.NewWithOptions(io.Discard, opts), func() {}
	}
	//nolint:errcheck // Best-effort close
	return log.NewWithOptions(f, opts), func() { f.Close() }
}
