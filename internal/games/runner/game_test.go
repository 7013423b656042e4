package runner

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/dino-dash/internal/audio"
	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
	"github.com/vovakirdan/dino-dash/internal/leaderboard"
)

const frame = time.Second / 60

type recordingSubmitter struct {
	mu     sync.Mutex
	scores []int
	ids    []leaderboard.Identity
}

func (s *recordingSubmitter) Submit(id leaderboard.Identity, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, id)
	s.scores = append(s.scores, score)
}

func (s *recordingSubmitter) calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.scores...)
}

// quietConfig spawns nothing for a long time so tests place entities by hand.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Obstacles.FirstDelay = 1000
	cfg.Collectibles.Interval = 1000
	cfg.Collectibles.Jitter = 0
	return cfg
}

type testGame struct {
	*Game
	clock *core.ManualClock
	sink  *audio.Recorder
	subs  *recordingSubmitter
}

func newTestGame(cfg config.RunnerConfig) testGame {
	clock := core.NewManualClock(testEpoch)
	sink := &audio.Recorder{}
	subs := &recordingSubmitter{}
	g := New(cfg,
		WithClock(clock),
		WithSeed(1),
		WithAudio(sink),
		WithSubmitter(subs, leaderboard.Identity{Name: "ada", Email: "ada@example.com"}),
	)
	return testGame{Game: g, clock: clock, sink: sink, subs: subs}
}

// step advances the game and its clock by n frames.
func (tg testGame) step(n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		tg.clock.Advance(frame)
		tg.Step(frame, in)
	}
}

func jumpInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

func pauseInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	return in
}

// lethalObstacle overlaps the default player's hitbox and stays on it for
// a few frames while scrolling left.
func lethalObstacle() Obstacle {
	return Obstacle{Kind: ObstacleMinor, X: 70, Y: 550, W: 25, H: 50}
}

func TestGameStartsPlaying(t *testing.T) {
	tg := newTestGame(quietConfig())

	if tg.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected playing", tg.Phase())
	}
	st := tg.State()
	if st.Score != 0 || st.GameOver || st.Paused || st.Exited {
		t.Errorf("unexpected initial state %+v", st)
	}
	if got := tg.sink.Tracks(); len(got) != 1 || got[0] != audio.TrackBackground {
		t.Errorf("music = %v, expected [background]", got)
	}
}

func TestGameScoreAccruesWithTime(t *testing.T) {
	smooth := newTestGame(quietConfig())
	smooth.step(60, core.InputFrame{})

	choppy := newTestGame(quietConfig())
	for i := 0; i < 10; i++ {
		choppy.Step(100*time.Millisecond, core.InputFrame{})
	}

	a, b := smooth.State().Score, choppy.State().Score
	if a < 59 || a > 60 {
		t.Errorf("score after 1s = %d, expected about 60", a)
	}
	if d := a - b; d < -1 || d > 1 {
		t.Errorf("score depends on frame rate: %d vs %d", a, b)
	}
}

func TestGameFatalCollisionSubmitsOnce(t *testing.T) {
	tg := newTestGame(quietConfig())
	tg.step(30, core.InputFrame{})

	tg.obstacles = append(tg.obstacles, lethalObstacle())
	tg.step(1, core.InputFrame{})

	if tg.Phase() != PhaseGameOver {
		t.Fatalf("Phase() = %v, expected game over", tg.Phase())
	}
	final := tg.State()
	if !final.GameOver {
		t.Error("State().GameOver should be set")
	}

	// Frozen: further steps and jumps change nothing
	before := tg.Snapshot()
	tg.step(120, jumpInput())
	if after := tg.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("snapshot changed after game over")
	}

	calls := tg.subs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected exactly one submission, got %v", calls)
	}
	if calls[0] != final.Score {
		t.Errorf("submitted %d, expected final score %d", calls[0], final.Score)
	}
	if tg.subs.ids[0].Email != "ada@example.com" {
		t.Errorf("submitted for %+v", tg.subs.ids[0])
	}
	if got := tg.sink.Count(audio.CueDeath); got != 1 {
		t.Errorf("death cue played %d times, expected 1", got)
	}
	if got := tg.sink.LastTrack(); got != audio.TrackGameOver {
		t.Errorf("LastTrack() = %v, expected game over", got)
	}
}

func TestGameSubmitsZeroScore(t *testing.T) {
	tg := newTestGame(quietConfig())
	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.step(1, core.InputFrame{})

	// One frame at 60 points per second truncates to 0 or 1
	if calls := tg.subs.calls(); len(calls) != 1 || calls[0] > 1 {
		t.Errorf("expected one near-zero submission, got %v", calls)
	}
}

func TestGameInvincibilityPreventsGameOver(t *testing.T) {
	tg := newTestGame(quietConfig())

	tg.mods.ActivateInvincibility()
	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.step(10, core.InputFrame{})

	if tg.Phase() != PhasePlaying {
		t.Fatal("invincible player should survive an overlapping obstacle")
	}
	if tg.sink.LastTrack() != audio.TrackInvincible {
		t.Errorf("LastTrack() = %v, expected invincible", tg.sink.LastTrack())
	}

	// Expire, then collide again
	tg.clock.Advance(5 * time.Second)
	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.Step(frame, core.InputFrame{})

	if tg.Phase() != PhaseGameOver {
		t.Error("collision after invincibility expired should end the round")
	}
}

func TestGamePickupBeforeLethalCheck(t *testing.T) {
	tg := newTestGame(quietConfig())

	// The AI pickup and the obstacle arrive in the same frame
	tg.collectibles = []Collectible{{Kind: PowerUpAI, X: 65, Y: 563, Size: 24}}
	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.step(1, core.InputFrame{})

	if tg.Phase() != PhasePlaying {
		t.Fatal("invincibility picked up this frame should protect the player")
	}
	if !tg.Snapshot().Modifiers.Invincible {
		t.Error("expected invincibility to be active")
	}
	if tg.sink.Count(audio.CuePowerUpAI) != 1 {
		t.Error("expected the AI power-up cue")
	}
	if len(tg.Snapshot().Collectibles) != 0 {
		t.Error("picked-up collectible should be removed")
	}
}

func TestGamePowerUps(t *testing.T) {
	cfg := quietConfig()

	t.Run("customer adds points", func(t *testing.T) {
		tg := newTestGame(cfg)
		tg.collectibles = []Collectible{{Kind: PowerUpCustomer, X: 65, Y: 563, Size: 24}}
		tg.step(1, core.InputFrame{})

		if got := tg.State().Score; got < cfg.PowerUps.CustomerPoints {
			t.Errorf("score = %d, expected at least %d", got, cfg.PowerUps.CustomerPoints)
		}
		if tg.sink.Count(audio.CuePowerUpCustomer) != 1 {
			t.Error("expected customer cue")
		}
	})

	t.Run("automation boosts speed and music", func(t *testing.T) {
		tg := newTestGame(cfg)
		base := tg.Snapshot().Speed

		tg.collectibles = []Collectible{{Kind: PowerUpAutomation, X: 65, Y: 563, Size: 24}}
		tg.step(1, core.InputFrame{})

		snap := tg.Snapshot()
		if !snap.Modifiers.SpeedBoost || snap.Speed <= base {
			t.Errorf("expected boosted speed, got %v (base %v)", snap.Speed, base)
		}
		if tg.sink.LastTrack() != audio.TrackSpeedBoost {
			t.Errorf("LastTrack() = %v, expected speed boost", tg.sink.LastTrack())
		}

		tg.clock.Advance(6 * time.Second)
		tg.Step(frame, core.InputFrame{})
		if tg.sink.LastTrack() != audio.TrackBackground {
			t.Errorf("LastTrack() = %v, expected background after expiry", tg.sink.LastTrack())
		}
	})

	t.Run("knowledge restores double jump", func(t *testing.T) {
		tg := newTestGame(cfg)
		tg.step(1, jumpInput())
		tg.step(1, jumpInput())
		if tg.player.DoubleJump {
			t.Fatal("test setup: double jump should be spent")
		}

		x, y := tg.player.Center()
		tg.collectibles = []Collectible{{Kind: PowerUpKnowledge, X: x - 12, Y: y - 12, Size: 24}}
		tg.step(1, core.InputFrame{})

		if !tg.player.DoubleJump {
			t.Error("knowledge pickup should restore the double jump mid-air")
		}
		if tg.State().Score < cfg.PowerUps.KnowledgePoints {
			t.Errorf("score = %d, expected knowledge points", tg.State().Score)
		}
	})
}

func TestGameEdgeOverlapEndsRound(t *testing.T) {
	tg := newTestGame(quietConfig())

	// Overlaps the player's box by 1px along its whole right edge
	tg.obstacles = []Obstacle{{Kind: ObstacleMinor, X: 99, Y: 550, W: 25, H: 50}}
	if got := tg.detector.FatalHit(tg.player, tg.obstacles, false); got != 0 {
		t.Fatalf("FatalHit = %d, expected 0", got)
	}

	tg.step(1, core.InputFrame{})
	if tg.Phase() != PhaseGameOver {
		t.Errorf("Phase() = %v, expected game over", tg.Phase())
	}
}

func TestGameDodgeBonus(t *testing.T) {
	cfg := quietConfig()
	tg := newTestGame(cfg)

	// Right edge at 45, already behind the player's front edge
	tg.obstacles = []Obstacle{{Kind: ObstacleMinor, X: 20, Y: 570, W: 25, H: 30}}
	tg.step(1, core.InputFrame{})

	if tg.Phase() != PhasePlaying {
		t.Fatal("obstacle outside the hitbox should not end the round")
	}
	if got := tg.State().Score; got < cfg.Score.DodgeBonus {
		t.Errorf("score = %d, expected dodge bonus %d", got, cfg.Score.DodgeBonus)
	}
	if tg.sink.Count(audio.CueDodge) != 1 {
		t.Error("expected one dodge cue")
	}

	tg.step(1, core.InputFrame{})
	if tg.sink.Count(audio.CueDodge) != 1 {
		t.Error("an obstacle is scored only once")
	}
}

func TestGameLargeStepDoesNotTunnel(t *testing.T) {
	tg := newTestGame(quietConfig())

	// 300px ahead; one second at base speed moves it 300px
	tg.obstacles = []Obstacle{{Kind: ObstacleMinor, X: 200, Y: 570, W: 25, H: 30}}
	tg.Step(time.Second, core.InputFrame{})

	if tg.Phase() != PhaseGameOver {
		t.Error("obstacle passed through the player in a single large step")
	}
}

func TestGameJumpCues(t *testing.T) {
	tg := newTestGame(quietConfig())

	tg.step(1, jumpInput())
	tg.step(1, jumpInput())
	tg.step(1, jumpInput())

	if got := tg.sink.Cues(); !reflect.DeepEqual(got, []audio.Cue{audio.CueJump, audio.CueDoubleJump}) {
		t.Errorf("cues = %v, expected jump then double jump", got)
	}
}

func TestGamePause(t *testing.T) {
	tg := newTestGame(quietConfig())
	tg.step(10, core.InputFrame{})

	res := tg.Step(frame, pauseInput())
	if !res.State.Paused || res.Stepped {
		t.Fatalf("expected paused without stepping, got %+v", res)
	}

	before := tg.Snapshot()
	tg.step(30, jumpInput())
	if after := tg.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("paused game advanced")
	}

	tg.Step(frame, pauseInput())
	if tg.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameRestartMatchesInitialSnapshot(t *testing.T) {
	tg := newTestGame(config.DefaultRunnerConfig())
	initial := tg.Snapshot()

	for i := 0; i < 600 && tg.Phase() == PhasePlaying; i++ {
		in := core.InputFrame{}
		if i%45 == 0 {
			in = jumpInput()
		}
		tg.step(1, in)
	}
	tg.mods.ActivateInvincibility()
	tg.mods.ActivateSpeedBoost()

	tg.Restart()
	if got := tg.Snapshot(); !reflect.DeepEqual(initial, got) {
		t.Errorf("snapshot after restart differs:\n got %+v\nwant %+v", got, initial)
	}
	if tg.Round() != 1 {
		t.Errorf("Round() = %d, expected 1", tg.Round())
	}
	if tg.sink.LastTrack() != audio.TrackBackground {
		t.Errorf("LastTrack() = %v, expected background", tg.sink.LastTrack())
	}

	// Timers from the previous round stay silent
	tg.clock.Advance(10 * time.Second)
	if got := tg.Snapshot(); !reflect.DeepEqual(initial, got) {
		t.Error("stale timer changed the new round")
	}
}

func TestGameRestartAllowsNewSubmission(t *testing.T) {
	tg := newTestGame(quietConfig())

	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.step(1, core.InputFrame{})
	tg.Restart()
	tg.obstacles = []Obstacle{lethalObstacle()}
	tg.step(1, core.InputFrame{})

	if got := len(tg.subs.calls()); got != 2 {
		t.Errorf("expected one submission per round, got %d", got)
	}
}

func TestGameDeterministicWithSeed(t *testing.T) {
	play := func() Snapshot {
		tg := newTestGame(config.DefaultRunnerConfig())
		for i := 0; i < 1200 && tg.Phase() == PhasePlaying; i++ {
			in := core.InputFrame{}
			if i%40 == 0 {
				in = jumpInput()
			}
			tg.step(1, in)
		}
		return tg.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("identically seeded games diverged")
	}
}

func TestGameSetConfigAppliesOnRestart(t *testing.T) {
	tg := newTestGame(quietConfig())

	next := quietConfig()
	next.Score.Rate = 120
	tg.SetConfig(next)

	if tg.Config().Score.Rate != 60 {
		t.Error("running round should keep its config")
	}
	tg.Restart()
	if tg.Config().Score.Rate != 120 {
		t.Error("restart should apply the queued config")
	}
}

func TestGameClose(t *testing.T) {
	tg := newTestGame(quietConfig())
	tg.mods.ActivateInvincibility()
	tg.Close()

	if !tg.State().Exited {
		t.Fatal("State().Exited should be set")
	}
	if tg.clock.Pending() != 0 {
		t.Errorf("Close should cancel timers, got %d pending", tg.clock.Pending())
	}

	before := tg.Snapshot()
	if res := tg.Step(frame, jumpInput()); res.Stepped {
		t.Error("Step after Close should do nothing")
	}
	tg.Restart()
	if tg.Phase() != PhaseExited {
		t.Error("Restart should not revive a closed game")
	}
	if after := tg.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("closed game changed")
	}
	if len(tg.subs.calls()) != 0 {
		t.Error("leaving a round does not submit a score")
	}
}
