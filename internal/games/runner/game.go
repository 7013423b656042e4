// Package runner implements the side-scrolling runner simulation: physics,
// spawning, collisions, timed power-ups and the round state machine.
//
// The package never blocks and never draws. A Driver feeds it elapsed time
// once per display refresh; results leave through an immutable Snapshot,
// audio cues and a fire-and-forget score submission.
package runner

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/dino-dash/internal/audio"
	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
	"github.com/vovakirdan/dino-dash/internal/leaderboard"
)

// ScoreSubmitter receives the final score of a round. It must return
// immediately; leaderboard.Async is the production implementation.
type ScoreSubmitter interface {
	Submit(id leaderboard.Identity, score int)
}

// Option customizes a Game.
type Option func(*Game)

// WithClock sets the clock that schedules power-up expiry.
func WithClock(c core.Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithSeed fixes the random seed. Round n uses seed+n.
func WithSeed(seed int64) Option {
	return func(g *Game) { g.seed = seed }
}

// WithAudio sets the audio sink.
func WithAudio(s audio.Sink) Option {
	return func(g *Game) { g.sink = s }
}

// WithSubmitter sets where final scores go, and for whom.
func WithSubmitter(s ScoreSubmitter, id leaderboard.Identity) Option {
	return func(g *Game) {
		g.submitter = s
		g.identity = id
	}
}

// Game is one player's runner session. Rounds restart in place.
type Game struct {
	mu sync.Mutex

	cfg       config.RunnerConfig
	pending   *config.RunnerConfig // Applied on the next restart
	clock     core.Clock
	seed      int64
	round     int64
	sink      audio.Sink
	submitter ScoreSubmitter
	identity  leaderboard.Identity

	physics    Physics
	detector   Detector
	difficulty *config.DifficultyManager
	spawner    *Spawner
	mods       *Modifiers

	player       Player
	obstacles    []Obstacle
	collectibles []Collectible
	particles    []Particle
	score        float64
	elapsed      float64
	phase        Phase
	paused       bool
	submitted    bool
	track        audio.Track
}

// New creates a game and starts its first round.
func New(cfg config.RunnerConfig, opts ...Option) *Game {
	g := &Game{
		cfg:   cfg,
		clock: core.SystemClock{},
		seed:  time.Now().UnixNano(),
		sink:  audio.Nop{},
	}
	for _, opt := range opts {
		opt(g)
	}

	g.mods = NewModifiers(g.clock, cfg.PowerUps)
	g.reset()
	return g
}

// reset rebuilds every piece of round state from g.cfg. Caller holds g.mu
// (or is New) and has cancelled the modifiers.
func (g *Game) reset() {
	g.physics = NewPhysics(g.cfg)
	g.detector = NewDetector(g.cfg)
	g.difficulty = config.NewDifficultyManager(g.cfg)
	g.mods.SetConfig(g.cfg.PowerUps)

	rng := rand.New(rand.NewSource(g.seed + g.round))
	g.spawner = NewSpawner(g.cfg, g.difficulty, rng)

	g.player = g.physics.Spawn()
	g.obstacles = nil
	g.collectibles = nil
	g.particles = nil
	g.score = 0
	g.elapsed = 0
	g.phase = PhasePlaying
	g.paused = false
	g.submitted = false

	g.setTrack(audio.TrackBackground)
}

// Restart ends the current round and starts a fresh one with the latest
// config. Has no effect once the game was closed.
func (g *Game) Restart() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseExited {
		return
	}
	g.mods.CancelAll()
	if g.pending != nil {
		g.cfg = *g.pending
		g.pending = nil
	}
	g.round++
	g.track = audio.TrackNone
	g.reset()
}

// SetConfig queues a config for the next round. The running round keeps
// its settings.
func (g *Game) SetConfig(cfg config.RunnerConfig) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &cfg
}

// Close leaves the game. Pending timers are cancelled and later steps do nothing.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.mods.CancelAll()
	g.phase = PhaseExited
}

// Step advances the round by dt of real time. Large steps are split into
// sub-steps of at most one reference frame so fast obstacles cannot tunnel
// through the player. A jump in the input applies to the first sub-step.
func (g *Game) Step(dt time.Duration, in core.InputFrame) core.StepResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if in.Has(core.ActionPause) && g.phase == PhasePlaying {
		g.paused = !g.paused
	}
	if g.phase != PhasePlaying || g.paused || dt <= 0 {
		return core.StepResult{State: g.state()}
	}

	frame := 1 / g.cfg.Frame.ReferenceFPS
	jump := in.Has(core.ActionJump)
	for remaining := dt.Seconds(); remaining > 1e-9 && g.phase == PhasePlaying; {
		sub := remaining
		if sub > frame {
			sub = frame
		}
		g.tick(sub, jump)
		jump = false
		remaining -= sub
	}

	if g.phase == PhasePlaying {
		g.syncMusic()
	}
	return core.StepResult{State: g.state(), Stepped: true}
}

// tick runs one sub-step of dt seconds.
func (g *Game) tick(dt float64, jump bool) {
	dtScale := dt * g.cfg.Frame.ReferenceFPS
	mods := g.mods.State()

	g.elapsed += dt
	g.score += g.cfg.Score.Rate * dt * mods.SpeedMultiplier

	if jump {
		switch g.physics.Jump(&g.player) {
		case JumpSingle:
			g.sink.PlayCue(audio.CueJump)
		case JumpDouble:
			g.sink.PlayCue(audio.CueDoubleJump)
		}
	}
	g.physics.Integrate(&g.player, dtScale)

	dx := g.difficulty.Speed(g.score) * mods.SpeedMultiplier * dtScale
	g.obstacles = g.advanceObstacles(g.obstacles, dx)
	g.collectibles = g.advanceCollectibles(g.collectibles, dx)

	newObs, newCols := g.spawner.Update(dt, g.score)
	g.obstacles = append(g.obstacles, newObs...)
	g.collectibles = append(g.collectibles, newCols...)

	// Pickups apply before the lethal check so invincibility gained this
	// frame already protects the player.
	if hits := g.detector.Pickups(g.player, g.collectibles); len(hits) > 0 {
		g.collectibles = g.collect(g.collectibles, hits)
		mods = g.mods.State()
	}

	g.particles = updateParticles(g.particles, dt, dtScale)

	if g.detector.FatalHit(g.player, g.obstacles, mods.Invincible) >= 0 {
		g.endRound()
	}
}

// advanceObstacles returns the next obstacle list: moved left, scored when
// they pass the player, dropped once off-screen.
func (g *Game) advanceObstacles(prev []Obstacle, dx float64) []Obstacle {
	var next []Obstacle
	for _, o := range prev {
		o.X -= dx
		if o.X+o.W < g.cfg.World.OffscreenX {
			continue
		}
		if !o.Passed && o.X+o.W < g.player.X {
			o.Passed = true
			g.score += float64(g.cfg.Score.DodgeBonus)
			g.sink.PlayCue(audio.CueDodge)
		}
		next = append(next, o)
	}
	return next
}

func (g *Game) advanceCollectibles(prev []Collectible, dx float64) []Collectible {
	var next []Collectible
	for _, c := range prev {
		c.X -= dx
		if c.X+c.Size < g.cfg.World.OffscreenX {
			continue
		}
		next = append(next, c)
	}
	return next
}

// collect applies the picked-up collectibles and returns the rest.
func (g *Game) collect(prev []Collectible, hits []int) []Collectible {
	picked := make(map[int]bool, len(hits))
	for _, i := range hits {
		picked[i] = true
	}

	var next []Collectible
	for i, c := range prev {
		if !picked[i] {
			next = append(next, c)
			continue
		}
		g.applyPowerUp(c.Kind)
		x, y := c.Center()
		g.particles = append(g.particles, burst(x, y, 8, 3, powerUpColor(c.Kind))...)
	}
	return next
}

func (g *Game) applyPowerUp(kind PowerUpKind) {
	pu := g.cfg.PowerUps
	switch kind {
	case PowerUpCustomer:
		g.score += float64(pu.CustomerPoints)
		g.sink.PlayCue(audio.CuePowerUpCustomer)
	case PowerUpAutomation:
		g.mods.ActivateSpeedBoost()
		g.sink.PlayCue(audio.CuePowerUpAutomation)
	case PowerUpAI:
		g.mods.ActivateInvincibility()
		g.sink.PlayCue(audio.CuePowerUpAI)
	case PowerUpKnowledge:
		g.score += float64(pu.KnowledgePoints)
		if !g.player.Grounded {
			g.player.DoubleJump = true
		}
		g.sink.PlayCue(audio.CuePowerUpKnowledge)
	}
}

// endRound freezes the round and submits the score once.
func (g *Game) endRound() {
	g.phase = PhaseGameOver
	g.mods.CancelAll()

	x, y := g.player.Center()
	g.particles = append(g.particles, burst(x, y, 12, 4, core.ColorBrightRed)...)

	g.sink.PlayCue(audio.CueDeath)
	g.setTrack(audio.TrackGameOver)

	if g.submitted {
		return
	}
	g.submitted = true
	if g.submitter != nil {
		g.submitter.Submit(g.identity, int(g.score))
	}
}

// syncMusic follows modifier changes, including expiries that happened
// between frames.
func (g *Game) syncMusic() {
	mods := g.mods.State()
	switch {
	case mods.Invincible:
		g.setTrack(audio.TrackInvincible)
	case mods.SpeedBoost:
		g.setTrack(audio.TrackSpeedBoost)
	default:
		g.setTrack(audio.TrackBackground)
	}
}

func (g *Game) setTrack(t audio.Track) {
	if g.track == t {
		return
	}
	g.track = t
	g.sink.PlayMusic(t)
}

// Snapshot returns the current drawable state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshot()
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state()
}

func (g *Game) state() core.GameState {
	return core.GameState{
		Score:    int(g.score),
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
		Exited:   g.phase == PhaseExited,
	}
}

// Phase returns the round's lifecycle state.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Round returns how many restarts have happened.
func (g *Game) Round() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.round
}

// Config returns the config of the running round.
func (g *Game) Config() config.RunnerConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

func powerUpColor(kind PowerUpKind) core.Color {
	switch kind {
	case PowerUpCustomer:
		return core.ColorBrightGreen
	case PowerUpAutomation:
		return core.ColorBrightYellow
	case PowerUpAI:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightCyan
	}
}
