package runner

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
)

// ObstacleKind is the obstacle variant.
type ObstacleKind int

const (
	ObstacleMinor ObstacleKind = iota
	ObstacleMajor
	ObstacleCritical
	obstacleKinds
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstacleMinor:
		return "minor"
	case ObstacleMajor:
		return "major"
	case ObstacleCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// PowerUpKind is the collectible variant.
type PowerUpKind int

const (
	PowerUpCustomer   PowerUpKind = iota // Instant points
	PowerUpAutomation                    // Speed boost
	PowerUpAI                            // Invincibility
	PowerUpKnowledge                     // Points and a fresh double jump
	powerUpKinds
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpCustomer:
		return "customer"
	case PowerUpAutomation:
		return "automation"
	case PowerUpAI:
		return "ai"
	case PowerUpKnowledge:
		return "knowledge"
	default:
		return "unknown"
	}
}

// Obstacle is a ground hazard scrolling toward the player.
type Obstacle struct {
	Kind   ObstacleKind
	X, Y   float64
	W, H   float64
	Passed bool // Right edge has gone past the player
}

// Box returns the obstacle's collision rectangle.
func (o Obstacle) Box() core.Box {
	return core.Box{X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Collectible is a floating power-up.
type Collectible struct {
	Kind  PowerUpKind
	X, Y  float64 // Top-left corner
	Size  float64
	Phase float64 // Bob offset in radians, display only
}

// Center returns the center of the collectible.
func (c Collectible) Center() (float64, float64) {
	return c.X + c.Size/2, c.Y + c.Size/2
}

// Spawner creates obstacles and collectibles on independent timers.
type Spawner struct {
	world        config.WorldConfig
	obstacles    config.ObstacleConfig
	collectibles config.CollectibleConfig
	difficulty   *config.DifficultyManager
	rng          *rand.Rand

	obstacleElapsed      float64
	obstacleThreshold    float64
	collectibleElapsed   float64
	collectibleThreshold float64
}

// NewSpawner creates a spawner drawing all randomness from rng.
func NewSpawner(cfg config.RunnerConfig, diff *config.DifficultyManager, rng *rand.Rand) *Spawner {
	s := &Spawner{
		world:        cfg.World,
		obstacles:    cfg.Obstacles,
		collectibles: cfg.Collectibles,
		difficulty:   diff,
	}
	s.Reset(rng)
	return s
}

// Reset clears both timers and swaps in a new random source.
func (s *Spawner) Reset(rng *rand.Rand) {
	s.rng = rng
	s.obstacleElapsed = 0
	s.obstacleThreshold = s.obstacles.FirstDelay
	s.collectibleElapsed = 0
	s.collectibleThreshold = s.rollCollectibleInterval()
}

// Update advances both timers by dt seconds and returns anything spawned.
// score drives the obstacle gap.
func (s *Spawner) Update(dt, score float64) ([]Obstacle, []Collectible) {
	var obs []Obstacle
	var cols []Collectible

	s.obstacleElapsed += dt
	if s.obstacleElapsed >= s.obstacleThreshold {
		s.obstacleElapsed -= s.obstacleThreshold
		obs = append(obs, s.spawnObstacle())
		s.obstacleThreshold = s.rollObstacleGap(score)
	}

	s.collectibleElapsed += dt
	if s.collectibleElapsed >= s.collectibleThreshold {
		s.collectibleElapsed -= s.collectibleThreshold
		cols = append(cols, s.spawnCollectible())
		s.collectibleThreshold = s.rollCollectibleInterval()
	}

	return obs, cols
}

// NextObstacleIn returns the seconds until the next obstacle spawns.
func (s *Spawner) NextObstacleIn() float64 {
	return math.Max(0, s.obstacleThreshold-s.obstacleElapsed)
}

func (s *Spawner) spawnObstacle() Obstacle {
	kind := ObstacleKind(s.rng.Intn(int(obstacleKinds)))

	var v config.ObstacleVariant
	switch kind {
	case ObstacleMinor:
		v = s.obstacles.Minor
	case ObstacleMajor:
		v = s.obstacles.Major
	default:
		v = s.obstacles.Critical
	}

	w := math.Max(v.Width, 1)
	h := core.ClampF(v.Height, 1, s.world.Height)
	return Obstacle{
		Kind: kind,
		X:    s.world.Width,
		Y:    s.world.Height - h,
		W:    w,
		H:    h,
	}
}

func (s *Spawner) spawnCollectible() Collectible {
	kind := PowerUpKind(s.rng.Intn(int(powerUpKinds)))

	size := math.Max(s.collectibles.Size, 1)
	band := s.collectibles.BandTop - s.collectibles.BandBottom
	above := s.collectibles.BandBottom + s.rng.Float64()*math.Max(band, 0)
	ground := s.world.Height

	y := core.ClampF(ground-above-size/2, 0, math.Max(ground-size, 0))
	return Collectible{
		Kind:  kind,
		X:     s.world.Width,
		Y:     y,
		Size:  size,
		Phase: s.rng.Float64() * 2 * math.Pi,
	}
}

// rollObstacleGap draws the next gap uniformly from the difficulty bounds.
func (s *Spawner) rollObstacleGap(score float64) float64 {
	lo, hi := s.difficulty.GapBounds(score)
	gap := lo + s.rng.Float64()*(hi-lo)
	return math.Max(gap, s.difficulty.GapFloor())
}

func (s *Spawner) rollCollectibleInterval() float64 {
	jitter := (s.rng.Float64()*2 - 1) * s.collectibles.Jitter
	return math.Max(s.collectibles.Interval+jitter, 0.1)
}
