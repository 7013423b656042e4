package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
)

// Default player: box (50, 550) 50x50, hitbox circle at (75, 575) with r 25.
func testPlayerAndDetector() (Player, Detector) {
	cfg := config.DefaultRunnerConfig()
	return NewPhysics(cfg).Spawn(), NewDetector(cfg)
}

func TestDetectorNoOverlapNoCollision(t *testing.T) {
	p, d := testPlayerAndDetector()

	tests := []struct {
		name string
		o    Obstacle
	}{
		{"right", Obstacle{X: 101, Y: 500, W: 25, H: 100}},
		{"touching right edge", Obstacle{X: 100, Y: 500, W: 25, H: 100}},
		{"left", Obstacle{X: 10, Y: 500, W: 39, H: 100}},
		{"above", Obstacle{X: 50, Y: 400, W: 50, H: 149}},
		{"far away", Obstacle{X: 700, Y: 520, W: 35, H: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d.HitsObstacle(p, tt.o) {
				t.Errorf("unexpected collision with %+v", tt.o)
			}
			if got := d.FatalHit(p, []Obstacle{tt.o}, false); got != -1 {
				t.Errorf("FatalHit = %d, expected -1", got)
			}
		})
	}
}

func TestDetectorNoOverlapProperty(t *testing.T) {
	p, d := testPlayerAndDetector()
	rng := rand.New(rand.NewSource(42))

	checked := 0
	for i := 0; i < 20000; i++ {
		o := Obstacle{
			X: rng.Float64()*200 - 50,
			Y: 400 + rng.Float64()*200,
			W: 1 + rng.Float64()*60,
			H: 1 + rng.Float64()*120,
		}
		if p.Box().Overlaps(o.Box()) {
			continue
		}
		checked++
		if d.HitsObstacle(p, o) {
			t.Fatalf("collision without box overlap: player %+v obstacle %+v", p.Box(), o.Box())
		}
	}
	if checked == 0 {
		t.Fatal("no non-overlapping samples generated")
	}
}

func TestDetectorOverlapIntoHitbox(t *testing.T) {
	p, d := testPlayerAndDetector()
	hb := d.Hitbox(p)

	tests := []struct {
		name string
		o    Obstacle
	}{
		{"from the right", Obstacle{X: hb.X + hb.R - 1, Y: 550, W: 25, H: 50}},
		{"from the left", Obstacle{X: hb.X - hb.R + 1 - 25, Y: 550, W: 25, H: 50}},
		{"from above", Obstacle{X: 60, Y: hb.Y - hb.R + 1 - 30, W: 30, H: 30}},
		{"engulfing", Obstacle{X: 0, Y: 500, W: 200, H: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !d.HitsObstacle(p, tt.o) {
				t.Errorf("expected collision with %+v", tt.o)
			}
			if got := d.FatalHit(p, []Obstacle{{X: 700, Y: 570, W: 25, H: 30}, tt.o}, false); got != 1 {
				t.Errorf("FatalHit = %d, expected 1", got)
			}
			if got := d.FatalHit(p, []Obstacle{tt.o}, true); got != -1 {
				t.Errorf("invincible FatalHit = %d, expected -1", got)
			}
		})
	}
}

func TestDetectorEdgeOverlapCollides(t *testing.T) {
	p, d := testPlayerAndDetector()

	tests := []struct {
		name string
		o    Obstacle
	}{
		{"right edge 1px", Obstacle{X: 99, Y: 550, W: 25, H: 50}},
		{"right edge 2px", Obstacle{X: 98, Y: 550, W: 25, H: 50}},
		{"right edge 2.5px", Obstacle{X: 97.5, Y: 550, W: 25, H: 50}},
		{"left edge 1px", Obstacle{X: 26, Y: 550, W: 25, H: 50}},
		{"top edge 1px", Obstacle{X: 50, Y: 521, W: 50, H: 30}},
		{"taller than the player", Obstacle{X: 99, Y: 450, W: 25, H: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !p.Box().Overlaps(tt.o.Box()) {
				t.Fatal("test setup: boxes should overlap")
			}
			if got := d.FatalHit(p, []Obstacle{tt.o}, false); got != 0 {
				t.Errorf("FatalHit = %d, expected 0", got)
			}
			if got := d.FatalHit(p, []Obstacle{tt.o}, true); got != -1 {
				t.Errorf("invincible FatalHit = %d, expected -1", got)
			}
		})
	}
}

func TestDetectorCornerClipForgiven(t *testing.T) {
	p, d := testPlayerAndDetector()

	// Boxes overlap by 2px at the player's top-right corner only
	o := Obstacle{X: 98, Y: 500, W: 25, H: 52}
	if !p.Box().Overlaps(o.Box()) {
		t.Fatal("test setup: boxes should overlap")
	}
	if d.HitsObstacle(p, o) {
		t.Error("corner clip should not collide")
	}
}

func TestDetectorPickups(t *testing.T) {
	p, d := testPlayerAndDetector()
	hb := d.Hitbox(p)
	reach := hb.R + config.DefaultRunnerConfig().Collectibles.PickupRadius

	at := func(cx, cy float64) Collectible {
		return Collectible{Kind: PowerUpCustomer, X: cx - 12, Y: cy - 12, Size: 24}
	}

	cols := []Collectible{
		at(hb.X+reach-1, hb.Y), // in reach
		at(hb.X+reach+1, hb.Y), // just out of reach
		at(hb.X, hb.Y),         // dead center
		at(hb.X, hb.Y-reach-5), // above
	}

	got := d.Pickups(p, cols)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Pickups = %v, expected [0 2]", got)
	}
	if d.Pickups(p, nil) != nil {
		t.Error("no collectibles should yield no pickups")
	}
}

func TestDetectorHitboxScale(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Player.HitboxScale = 0.5
	p := NewPhysics(cfg).Spawn()

	got := NewDetector(cfg).Hitbox(p)
	want := core.Circle{X: 75, Y: 575, R: 12.5}
	if got != want {
		t.Errorf("Hitbox = %+v, expected %+v", got, want)
	}
}
