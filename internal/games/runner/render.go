package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/dino-dash/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar    = '█'
	ObstacleChar  = '▓'
	ParticleChar  = '·'
	GroundChar    = '═'
	hudRows       = 1
	minScreenRows = 4
)

var spinFrames = []rune{'◐', '◓', '◑', '◒'}

// viewport maps world pixels to screen cells. Row 0 holds the HUD and the
// ground line sits on the last row.
type viewport struct {
	w, h           int
	worldW, worldH float64
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x / v.worldW * float64(v.w)))
}

func (v viewport) row(y float64) int {
	play := float64(v.h - hudRows - 1)
	return hudRows + int(math.Floor(y/v.worldH*play))
}

// cells returns the screen rectangle covering a world box, at least 1x1.
func (v viewport) cells(b core.Box) core.Rect {
	x0, y0 := v.col(b.X), v.row(b.Y)
	x1, y1 := v.col(b.Right()), v.row(b.Bottom())
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// Render draws a snapshot onto dst, scaling the world to the screen size.
func Render(snap Snapshot, dst *core.Screen) {
	dst.Clear()
	if dst.Height() < minScreenRows || dst.Width() < 1 || snap.WorldWidth <= 0 || snap.WorldHeight <= 0 {
		return
	}

	v := viewport{w: dst.Width(), h: dst.Height(), worldW: snap.WorldWidth, worldH: snap.WorldHeight}
	groundRow := dst.Height() - 1

	for _, o := range snap.Obstacles {
		r := v.cells(o.Box())
		dst.DrawRectColored(r, ObstacleChar, obstacleColor(o.Kind))
	}

	for _, c := range snap.Collectibles {
		r := v.cells(core.Box{X: c.X, Y: c.Y, W: c.Size, H: c.Size})
		cx, cy := r.Center()
		dst.SetColored(cx, core.Min(cy, groundRow-1), collectibleGlyph(c.Kind), powerUpColor(c.Kind))
	}

	drawPlayer(dst, v, snap)

	for _, p := range snap.Particles {
		x, y := v.col(p.X), v.row(p.Y)
		if y < groundRow && y >= hudRows {
			dst.SetColored(x, y, ParticleChar, p.Color)
		}
	}

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, groundRow, GroundChar, core.ColorGray)
	}

	drawHUD(dst, snap)

	if snap.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if snap.Phase == PhaseGameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	}
}

func drawPlayer(dst *core.Screen, v viewport, snap Snapshot) {
	p := snap.Player
	r := v.cells(p.Box())

	color := core.ColorBrightGreen
	switch {
	case snap.Modifiers.Invincible:
		color = core.ColorBrightMagenta
	case snap.Modifiers.SpeedBoost:
		color = core.ColorBrightYellow
	}

	glyph := PlayerChar
	if !p.Grounded {
		idx := int(p.Rotation/90) % len(spinFrames)
		if idx < 0 {
			idx += len(spinFrames)
		}
		glyph = spinFrames[idx]
	}
	dst.DrawRectColored(r, glyph, color)
}

func drawHUD(dst *core.Screen, snap Snapshot) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)

	right := fmt.Sprintf(" Spd: %.1f ", snap.Speed)
	if snap.Modifiers.SpeedBoost {
		right = fmt.Sprintf(" BOOST %.1fs ", snap.Modifiers.SpeedLeft.Seconds()) + right
	}
	if snap.Modifiers.Invincible {
		right = fmt.Sprintf(" SHIELD %.1fs ", snap.Modifiers.InvincibleLeft.Seconds()) + right
	}
	x := dst.Width() - len([]rune(right)) - 2
	if x > 0 {
		dst.DrawTextColored(x, 0, right, core.ColorCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

func obstacleColor(kind ObstacleKind) core.Color {
	switch kind {
	case ObstacleMinor:
		return core.ColorYellow
	case ObstacleMajor:
		return core.ColorOrange
	default:
		return core.ColorRed
	}
}

func collectibleGlyph(kind PowerUpKind) rune {
	switch kind {
	case PowerUpCustomer:
		return '$'
	case PowerUpAutomation:
		return '»'
	case PowerUpAI:
		return '◆'
	default:
		return '?'
	}
}
