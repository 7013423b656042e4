// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all configuration for the runner game.
type RunnerConfig struct {
	World        WorldConfig       `yaml:"world"`
	Frame        FrameConfig       `yaml:"frame"`
	Player       PlayerConfig      `yaml:"player"`
	Physics      PhysicsConfig     `yaml:"physics"`
	Obstacles    ObstacleConfig    `yaml:"obstacles"`
	Collectibles CollectibleConfig `yaml:"collectibles"`
	PowerUps     PowerUpConfig     `yaml:"powerups"`
	Score        ScoreConfig       `yaml:"score"`
	Difficulty   DifficultyConfig  `yaml:"difficulty"`
	Audio        AudioConfig       `yaml:"audio"`
	Leaderboard  LeaderboardConfig `yaml:"leaderboard"`
}

// WorldConfig defines the logical playfield in pixels.
type WorldConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	OffscreenX float64 `yaml:"offscreen_x"` // Entities with right edge left of this are removed
}

// FrameConfig defines the frame driver time basis.
type FrameConfig struct {
	ReferenceFPS float64 `yaml:"reference_fps"` // Physics constants are expressed per reference frame
	MaxDeltaMs   int     `yaml:"max_delta_ms"`  // Longer frames are clamped
}

// PlayerConfig defines the player's fixed geometry.
type PlayerConfig struct {
	X           float64 `yaml:"x"`
	Size        float64 `yaml:"size"`
	HitboxScale float64 `yaml:"hitbox_scale"` // Fraction of the half-size used as collision radius
	SpinSpeed   float64 `yaml:"spin_speed"`   // Degrees per reference frame while airborne
}

// PhysicsConfig defines the vertical motion parameters.
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	JumpStrength       float64 `yaml:"jump_strength"`
	DoubleJumpStrength float64 `yaml:"double_jump_strength"`
	MaxFallSpeed       float64 `yaml:"max_fall_speed"`
	BaseSpeed          float64 `yaml:"base_speed"` // Horizontal scroll, px per reference frame
}

// ObstacleVariant defines the geometry of one obstacle type.
type ObstacleVariant struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines obstacle spawning.
type ObstacleConfig struct {
	Minor       ObstacleVariant `yaml:"minor"`
	Major       ObstacleVariant `yaml:"major"`
	Critical    ObstacleVariant `yaml:"critical"`
	MinGap      float64         `yaml:"min_gap"`       // Seconds, at difficulty level 0
	MaxGap      float64         `yaml:"max_gap"`       // Seconds, at difficulty level 0
	MinGapFloor float64         `yaml:"min_gap_floor"` // Neither bound ever goes below this
	FirstDelay  float64         `yaml:"first_delay"`   // Seconds before the first obstacle
}

// CollectibleConfig defines power-up pickup spawning.
type CollectibleConfig struct {
	Interval     float64 `yaml:"interval"` // Seconds
	Jitter       float64 `yaml:"jitter"`   // +/- seconds
	Size         float64 `yaml:"size"`
	BandTop      float64 `yaml:"band_top"`    // Highest spawn, px above ground
	BandBottom   float64 `yaml:"band_bottom"` // Lowest spawn, px above ground
	PickupRadius float64 `yaml:"pickup_radius"`
	BobAmplitude float64 `yaml:"bob_amplitude"` // Display-only oscillation
	BobSpeed     float64 `yaml:"bob_speed"`     // Radians per second
}

// PowerUpConfig defines power-up effects.
type PowerUpConfig struct {
	SpeedMultiplier       float64 `yaml:"speed_multiplier"`
	SpeedDuration         float64 `yaml:"speed_duration"`         // Seconds
	InvincibilityDuration float64 `yaml:"invincibility_duration"` // Seconds
	CustomerPoints        int     `yaml:"customer_points"`
	KnowledgePoints       int     `yaml:"knowledge_points"`
}

// ScoreConfig defines score accrual.
type ScoreConfig struct {
	Rate       float64 `yaml:"rate"`        // Points per second at speed multiplier 1
	DodgeBonus int     `yaml:"dodge_bonus"` // Points per obstacle that passes the player
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to speed factor at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Seconds removed from both gap bounds at max difficulty
}

// AudioConfig controls sound output.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SoundVolume float64 `yaml:"sound_volume"` // 0..1
	MusicVolume float64 `yaml:"music_volume"` // 0..1
}

// LeaderboardConfig controls score submission and display.
type LeaderboardConfig struct {
	Limit         int     `yaml:"limit"`
	SubmitTimeout float64 `yaml:"submit_timeout"` // Seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
