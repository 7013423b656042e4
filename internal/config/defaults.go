package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:      800,
			Height:     600,
			OffscreenX: 0,
		},
		Frame: FrameConfig{
			ReferenceFPS: 60,
			MaxDeltaMs:   100,
		},
		Player: PlayerConfig{
			X:           50,
			Size:        50,
			HitboxScale: 1.0,
			SpinSpeed:   12,
		},
		Physics: PhysicsConfig{
			Gravity:            0.6,
			JumpStrength:       -20,
			DoubleJumpStrength: -16,
			MaxFallSpeed:       24,
			BaseSpeed:          5,
		},
		Obstacles: ObstacleConfig{
			Minor:       ObstacleVariant{Width: 25, Height: 30},
			Major:       ObstacleVariant{Width: 30, Height: 55},
			Critical:    ObstacleVariant{Width: 35, Height: 80},
			MinGap:      1.1,
			MaxGap:      2.0,
			MinGapFloor: 0.5,
			FirstDelay:  1.5,
		},
		Collectibles: CollectibleConfig{
			Interval:     6.0,
			Jitter:       1.5,
			Size:         24,
			BandTop:      260,
			BandBottom:   90,
			PickupRadius: 18,
			BobAmplitude: 8,
			BobSpeed:     4,
		},
		PowerUps: PowerUpConfig{
			SpeedMultiplier:       1.5,
			SpeedDuration:         5,
			InvincibilityDuration: 4,
			CustomerPoints:        100,
			KnowledgePoints:       250,
		},
		Score: ScoreConfig{
			Rate:       60,
			DodgeBonus: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
				GapReduction:    0.8,
			},
		},
		Audio: AudioConfig{
			Enabled:     true,
			SoundVolume: 0.7,
			MusicVolume: 0.3,
		},
		Leaderboard: LeaderboardConfig{
			Limit:         10,
			SubmitTimeout: 5,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
