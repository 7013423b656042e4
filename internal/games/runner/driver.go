package runner

import (
	"time"

	"github.com/vovakirdan/dino-dash/internal/core"
)

// Surface is the rendering collaborator. Draw receives one snapshot per
// frame and must not retain the game.
type Surface interface {
	// Ready reports whether there is somewhere to draw this frame.
	Ready() bool
	Draw(Snapshot)
}

// Driver turns display refreshes into simulation steps. It is called from a
// single goroutine, once per refresh.
type Driver struct {
	game     *Game
	surface  Surface
	maxDelta time.Duration
	last     time.Time
	started  bool
}

// NewDriver creates a driver for g drawing to s. s may be nil until the
// display is ready.
func NewDriver(g *Game, s Surface) *Driver {
	cfg := g.Config()
	return &Driver{
		game:     g,
		surface:  s,
		maxDelta: time.Duration(cfg.Frame.MaxDeltaMs) * time.Millisecond,
	}
}

// SetSurface swaps the rendering surface.
func (d *Driver) SetSurface(s Surface) {
	d.surface = s
}

// Game returns the driven game.
func (d *Driver) Game() *Game {
	return d.game
}

// Frame runs one refresh at time now. Without a ready surface the frame is
// skipped: nothing is stepped or drawn and the input is dropped, except a
// pause toggle.
// The first frame only establishes the time base.
func (d *Driver) Frame(now time.Time, in core.InputFrame) core.StepResult {
	var dt time.Duration
	if d.started {
		dt = now.Sub(d.last)
	}
	d.started = true
	d.last = now

	if d.surface == nil || !d.surface.Ready() {
		// A pause toggle is a one-shot key press, so it still applies
		if in.Has(core.ActionPause) {
			pause := core.NewInputFrame()
			pause.Set(core.ActionPause)
			d.game.Step(0, pause)
		}
		return core.StepResult{State: d.game.State()}
	}

	if dt < 0 {
		dt = 0
	}
	if d.maxDelta > 0 && dt > d.maxDelta {
		dt = d.maxDelta
	}

	res := d.game.Step(dt, in)
	d.surface.Draw(d.game.Snapshot())
	return res
}

// Resync forgets the previous frame time, e.g. after the program was
// suspended, so the next frame does not see a huge delta.
func (d *Driver) Resync() {
	d.started = false
}
