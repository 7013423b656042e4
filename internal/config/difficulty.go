package config

import "math"

// DifficultyManager derives scroll speed and obstacle gaps from score.
// All methods are pure functions of score, so equal scores give equal results.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
	baseSpeed    float64
	minGap       float64
	maxGap       float64
	gapFloor     float64
}

// NewDifficultyManager creates a new difficulty manager for a runner config.
func NewDifficultyManager(cfg RunnerConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg.Difficulty,
		initialLevel: clampF(cfg.Difficulty.InitialLevel, 0.0, 1.0),
		baseSpeed:    cfg.Physics.BaseSpeed,
		minGap:       cfg.Obstacles.MinGap,
		maxGap:       cfg.Obstacles.MaxGap,
		gapFloor:     cfg.Obstacles.MinGapFloor,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a score.
func (d *DifficultyManager) Level(score float64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	progress := clampF(score/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the horizontal scroll speed in px per reference frame.
// It grows from base to base * (1 + speed_multiplier) and never beyond.
func (d *DifficultyManager) Speed(score float64) float64 {
	return d.baseSpeed * (1.0 + d.Level(score)*d.cfg.Scaling.SpeedMultiplier)
}

// MaxSpeed returns the speed ceiling reached at full difficulty.
func (d *DifficultyManager) MaxSpeed() float64 {
	return d.baseSpeed * (1.0 + d.cfg.Scaling.SpeedMultiplier)
}

// GapBounds returns the [min, max] obstacle gap in seconds.
// Both bounds shrink with difficulty and are floored at min_gap_floor.
func (d *DifficultyManager) GapBounds(score float64) (float64, float64) {
	reduction := d.Level(score) * d.cfg.Scaling.GapReduction

	lo := math.Max(d.minGap-reduction, d.gapFloor)
	hi := math.Max(d.maxGap-reduction, d.gapFloor)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// GapFloor returns the smallest gap GapBounds can ever return.
func (d *DifficultyManager) GapFloor() float64 {
	return d.gapFloor
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
