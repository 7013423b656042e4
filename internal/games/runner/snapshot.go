package runner

import "math"

// Phase is the round's lifecycle state.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// CollectibleView is a collectible as drawn, with the bob applied.
type CollectibleView struct {
	Kind PowerUpKind
	X, Y float64
	Size float64
}

// Snapshot is everything a renderer needs for one frame. It shares no
// memory with the game, so it stays valid after later steps.
type Snapshot struct {
	Phase        Phase
	Paused       bool
	WorldWidth   float64
	WorldHeight  float64
	Player       Player
	Obstacles    []Obstacle
	Collectibles []CollectibleView
	Particles    []Particle
	Score        int
	Speed        float64 // Effective scroll speed, px per reference frame
	Elapsed      float64 // Seconds of play this round
	Modifiers    ModifierState
}

// snapshot builds a Snapshot from the game's current state. Caller holds g.mu.
func (g *Game) snapshot() Snapshot {
	mods := g.mods.State()

	var cols []CollectibleView
	for _, c := range g.collectibles {
		bob := math.Sin(g.elapsed*g.cfg.Collectibles.BobSpeed+c.Phase) * g.cfg.Collectibles.BobAmplitude
		cols = append(cols, CollectibleView{Kind: c.Kind, X: c.X, Y: c.Y + bob, Size: c.Size})
	}

	return Snapshot{
		Phase:        g.phase,
		Paused:       g.paused,
		WorldWidth:   g.cfg.World.Width,
		WorldHeight:  g.cfg.World.Height,
		Player:       g.player,
		Obstacles:    append([]Obstacle(nil), g.obstacles...),
		Collectibles: cols,
		Particles:    append([]Particle(nil), g.particles...),
		Score:        int(g.score),
		Speed:        g.difficulty.Speed(g.score) * mods.SpeedMultiplier,
		Elapsed:      g.elapsed,
		Modifiers:    mods,
	}
}
