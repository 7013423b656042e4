package runner

import (
	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
)

// Detector tests the player against obstacles and collectibles.
//
// The player is a circle centered on its box with radius size/2 * hitbox_scale.
// Obstacles are rectangles, collectibles are circles of pickup_radius. Since
// the circle never leaves the player's box, boxes that do not overlap never
// collide; contact that only clips the box corners is forgiven.
type Detector struct {
	hitboxScale  float64
	pickupRadius float64
}

// NewDetector creates a detector from the player and collectible settings.
func NewDetector(cfg config.RunnerConfig) Detector {
	return Detector{
		hitboxScale:  cfg.Player.HitboxScale,
		pickupRadius: cfg.Collectibles.PickupRadius,
	}
}

// Hitbox returns the player's collision circle.
func (d Detector) Hitbox(p Player) core.Circle {
	x, y := p.Center()
	return core.Circle{X: x, Y: y, R: p.Size / 2 * d.hitboxScale}
}

// HitsObstacle reports whether the player touches the obstacle.
func (d Detector) HitsObstacle(p Player, o Obstacle) bool {
	return core.CircleHitsBox(d.Hitbox(p), o.Box())
}

// Touches reports whether the player is close enough to pick c up.
func (d Detector) Touches(p Player, c Collectible) bool {
	x, y := c.Center()
	return core.CirclesOverlap(d.Hitbox(p), core.Circle{X: x, Y: y, R: d.pickupRadius})
}

// FatalHit returns the index of the first obstacle the player touches, or -1.
// An invincible player never has a fatal hit.
func (d Detector) FatalHit(p Player, obstacles []Obstacle, invincible bool) int {
	if invincible {
		return -1
	}
	for i, o := range obstacles {
		if d.HitsObstacle(p, o) {
			return i
		}
	}
	return -1
}

// Pickups returns the indexes of every collectible the player touches.
func (d Detector) Pickups(p Player, collectibles []Collectible) []int {
	var hits []int
	for i, c := range collectibles {
		if d.Touches(p, c) {
			hits = append(hits, i)
		}
	}
	return hits
}
