package runner

import (
	"math"

	"github.com/vovakirdan/dino-dash/internal/core"
)

// Particle is a cosmetic spark. It never affects gameplay.
type Particle struct {
	X, Y   float64
	VX, VY float64 // px per reference frame
	Life   float64 // Seconds remaining
	Color  core.Color
}

const (
	particleGravity = 0.3
	particleLife    = 0.6
)

// burst emits n particles evenly spread around (x, y).
func burst(x, y float64, n int, speed float64, color core.Color) []Particle {
	out := make([]Particle, 0, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		out = append(out, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle)*speed - speed/2,
			Life:  particleLife,
			Color: color,
		})
	}
	return out
}

// updateParticles returns the next generation, dropping expired particles.
// prev is not modified.
func updateParticles(prev []Particle, dt, dtScale float64) []Particle {
	var next []Particle
	for _, p := range prev {
		p.Life -= dt
		if p.Life <= 0 {
			continue
		}
		p.VY += particleGravity * dtScale
		p.X += p.VX * dtScale
		p.Y += p.VY * dtScale
		next = append(next, p)
	}
	return next
}
