package runner

import (
	"math"

	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
)

// JumpResult reports what a jump request did.
type JumpResult int

const (
	JumpNone   JumpResult = iota // Airborne with the double jump spent
	JumpSingle                   // Left the ground
	JumpDouble                   // Used the mid-air jump
)

// Player is the runner's vertical state. X and Size never change in a round.
type Player struct {
	X, Y       float64 // Top-left corner, world pixels
	VY         float64 // Vertical velocity, px per reference frame (positive = down)
	Size       float64
	Grounded   bool
	DoubleJump bool    // Mid-air jump still available
	Rotation   float64 // Degrees, cosmetic
}

// Box returns the player's bounding box.
func (p Player) Box() core.Box {
	return core.Box{X: p.X, Y: p.Y, W: p.Size, H: p.Size}
}

// Center returns the center of the player's box.
func (p Player) Center() (float64, float64) {
	return p.X + p.Size/2, p.Y + p.Size/2
}

// Physics integrates the player's vertical motion.
type Physics struct {
	cfg   config.PhysicsConfig
	x     float64
	size  float64
	floor float64 // Largest Y the player may have
	spin  float64
}

// NewPhysics creates an integrator for the given world.
func NewPhysics(cfg config.RunnerConfig) Physics {
	return Physics{
		cfg:   cfg.Physics,
		x:     cfg.Player.X,
		size:  cfg.Player.Size,
		floor: cfg.World.Height - cfg.Player.Size,
		spin:  cfg.Player.SpinSpeed,
	}
}

// Floor returns the player's resting Y.
func (ph Physics) Floor() float64 {
	return ph.floor
}

// Spawn returns a player standing on the ground.
func (ph Physics) Spawn() Player {
	return Player{
		X:        ph.x,
		Y:        ph.floor,
		Size:     ph.size,
		Grounded: true,
	}
}

// Jump applies a jump request. An airborne player without a double jump
// left is unchanged.
func (ph Physics) Jump(p *Player) JumpResult {
	switch {
	case p.Grounded:
		p.VY = ph.cfg.JumpStrength
		p.Grounded = false
		p.DoubleJump = true
		return JumpSingle
	case p.DoubleJump:
		p.VY = ph.cfg.DoubleJumpStrength
		p.DoubleJump = false
		return JumpDouble
	default:
		return JumpNone
	}
}

// Integrate advances the player by dtScale reference frames and reports
// whether it landed during this update.
func (ph Physics) Integrate(p *Player, dtScale float64) bool {
	if p.Grounded {
		p.Rotation = 0
		return false
	}

	p.VY += ph.cfg.Gravity * dtScale
	if p.VY > ph.cfg.MaxFallSpeed {
		p.VY = ph.cfg.MaxFallSpeed
	}
	p.Y += p.VY * dtScale
	p.Rotation = math.Mod(p.Rotation+ph.spin*dtScale, 360)

	if p.Y >= ph.floor {
		p.Y = ph.floor
		p.VY = 0
		p.Grounded = true
		p.DoubleJump = false
		p.Rotation = 0
		return true
	}
	return false
}
