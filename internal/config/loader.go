package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.arcade/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Locate returns the file LoadRunner would read for customPath, or "" when
// only the embedded default applies.
func Locate(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, p := range []string{userConfigPath("runner.yaml"), filepath.Join("configs", "runner.yaml")} {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadFile reads and parses a single YAML config file.
func LoadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults, so partial files only
// override what they name, then validates the result.
func Parse(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunnerConfig{}, err
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps values that would break the simulation: non-positive sizes,
// inverted ranges and non-positive time bases.
func (c *RunnerConfig) Validate() {
	d := DefaultRunnerConfig()

	if c.World.Width <= 0 {
		c.World.Width = d.World.Width
	}
	if c.World.Height <= 0 {
		c.World.Height = d.World.Height
	}
	if c.Frame.ReferenceFPS <= 0 {
		c.Frame.ReferenceFPS = d.Frame.ReferenceFPS
	}
	if c.Frame.MaxDeltaMs <= 0 {
		c.Frame.MaxDeltaMs = d.Frame.MaxDeltaMs
	}

	if c.Player.Size <= 0 || c.Player.Size >= c.World.Height {
		c.Player.Size = d.Player.Size
	}
	if c.Player.HitboxScale <= 0 || c.Player.HitboxScale > 1 {
		c.Player.HitboxScale = 1
	}
	c.Player.X = clampF(c.Player.X, 0, c.World.Width-c.Player.Size)

	if c.Physics.Gravity <= 0 {
		c.Physics.Gravity = d.Physics.Gravity
	}
	if c.Physics.JumpStrength >= 0 {
		c.Physics.JumpStrength = d.Physics.JumpStrength
	}
	if c.Physics.DoubleJumpStrength >= 0 {
		c.Physics.DoubleJumpStrength = d.Physics.DoubleJumpStrength
	}
	if c.Physics.MaxFallSpeed <= 0 {
		c.Physics.MaxFallSpeed = d.Physics.MaxFallSpeed
	}
	if c.Physics.BaseSpeed <= 0 {
		c.Physics.BaseSpeed = d.Physics.BaseSpeed
	}

	for _, v := range []*ObstacleVariant{&c.Obstacles.Minor, &c.Obstacles.Major, &c.Obstacles.Critical} {
		v.Width = clampF(v.Width, 1, c.World.Width)
		v.Height = clampF(v.Height, 1, c.World.Height)
	}
	if c.Obstacles.MinGapFloor <= 0 {
		c.Obstacles.MinGapFloor = d.Obstacles.MinGapFloor
	}
	if c.Obstacles.MinGap < c.Obstacles.MinGapFloor {
		c.Obstacles.MinGap = c.Obstacles.MinGapFloor
	}
	if c.Obstacles.MaxGap < c.Obstacles.MinGap {
		c.Obstacles.MaxGap = c.Obstacles.MinGap
	}
	if c.Obstacles.FirstDelay < 0 {
		c.Obstacles.FirstDelay = 0
	}

	if c.Collectibles.Interval <= 0 {
		c.Collectibles.Interval = d.Collectibles.Interval
	}
	c.Collectibles.Jitter = clampF(c.Collectibles.Jitter, 0, c.Collectibles.Interval/2)
	if c.Collectibles.Size <= 0 {
		c.Collectibles.Size = d.Collectibles.Size
	}
	if c.Collectibles.BandBottom > c.Collectibles.BandTop {
		c.Collectibles.BandBottom, c.Collectibles.BandTop = c.Collectibles.BandTop, c.Collectibles.BandBottom
	}
	if c.Collectibles.PickupRadius < 0 {
		c.Collectibles.PickupRadius = 0
	}

	if c.PowerUps.SpeedMultiplier < 1 {
		c.PowerUps.SpeedMultiplier = 1
	}
	if c.PowerUps.SpeedDuration <= 0 {
		c.PowerUps.SpeedDuration = d.PowerUps.SpeedDuration
	}
	if c.PowerUps.InvincibilityDuration <= 0 {
		c.PowerUps.InvincibilityDuration = d.PowerUps.InvincibilityDuration
	}

	if c.Score.Rate < 0 {
		c.Score.Rate = 0
	}
	c.Difficulty.InitialLevel = clampF(c.Difficulty.InitialLevel, 0, 1)
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		c.Difficulty.Scaling.SpeedMultiplier = 0
	}
	if c.Difficulty.Scaling.GapReduction < 0 {
		c.Difficulty.Scaling.GapReduction = 0
	}

	c.Audio.SoundVolume = clampF(c.Audio.SoundVolume, 0, 1)
	c.Audio.MusicVolume = clampF(c.Audio.MusicVolume, 0, 1)
	if c.Leaderboard.Limit <= 0 {
		c.Leaderboard.Limit = d.Leaderboard.Limit
	}
	if c.Leaderboard.SubmitTimeout <= 0 {
		c.Leaderboard.SubmitTimeout = d.Leaderboard.SubmitTimeout
	}
}

// UserConfigDir returns ~/.arcade/configs, or empty if home is unavailable.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs")
}

func userConfigPath(filename string) string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filename)
}
