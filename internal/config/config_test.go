package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	want := DefaultRunnerConfig()
	if cfg != want {
		t.Errorf("embedded YAML and DefaultRunnerConfig disagree:\n got  %+v\n want %+v", cfg, want)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 1.2\nscore:\n  rate: 30\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if cfg.Physics.Gravity != 1.2 {
		t.Errorf("Gravity = %v, expected 1.2", cfg.Physics.Gravity)
	}
	if cfg.Score.Rate != 30 {
		t.Errorf("Rate = %v, expected 30", cfg.Score.Rate)
	}
	// Untouched sections keep their defaults
	if cfg.Physics.JumpStrength != DefaultRunnerConfig().Physics.JumpStrength {
		t.Errorf("JumpStrength = %v, expected default", cfg.Physics.JumpStrength)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("physics: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidateClamps(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, c RunnerConfig)
	}{
		{
			name: "inverted gaps",
			yaml: "obstacles:\n  min_gap: 3\n  max_gap: 1\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Obstacles.MaxGap < c.Obstacles.MinGap {
					t.Errorf("MaxGap %v < MinGap %v", c.Obstacles.MaxGap, c.Obstacles.MinGap)
				}
			},
		},
		{
			name: "gap below floor",
			yaml: "obstacles:\n  min_gap: 0.1\n  min_gap_floor: 0.4\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Obstacles.MinGap != 0.4 {
					t.Errorf("MinGap = %v, expected 0.4", c.Obstacles.MinGap)
				}
			},
		},
		{
			name: "positive jump strength",
			yaml: "physics:\n  jump_strength: 10\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Physics.JumpStrength >= 0 {
					t.Errorf("JumpStrength = %v, expected negative", c.Physics.JumpStrength)
				}
			},
		},
		{
			name: "zero reference fps",
			yaml: "frame:\n  reference_fps: 0\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Frame.ReferenceFPS <= 0 {
					t.Errorf("ReferenceFPS = %v, expected positive", c.Frame.ReferenceFPS)
				}
			},
		},
		{
			name: "inverted collectible band",
			yaml: "collectibles:\n  band_top: 50\n  band_bottom: 200\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Collectibles.BandBottom > c.Collectibles.BandTop {
					t.Errorf("band not normalized: %v..%v", c.Collectibles.BandBottom, c.Collectibles.BandTop)
				}
			},
		},
		{
			name: "volume out of range",
			yaml: "audio:\n  sound_volume: 4\n  music_volume: -1\n",
			check: func(t *testing.T, c RunnerConfig) {
				if c.Audio.SoundVolume != 1 || c.Audio.MusicVolume != 0 {
					t.Errorf("volumes = %v/%v, expected 1/0", c.Audio.SoundVolume, c.Audio.MusicVolume)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: 1000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.World.Width != 1000 {
		t.Errorf("Width = %v, expected 1000", cfg.World.Width)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRunnerCustomPathMissing(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit config path that does not exist should fail")
	}
}

func TestLocateCustomPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "runner.yaml")
	if got := Locate(p); got != p {
		t.Errorf("Locate(%q) = %q", p, got)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
	}{
		{DifficultyEasy, true, 0.0},
		{DifficultyNormal, true, 0.3},
		{DifficultyHard, true, 0.7},
		{DifficultyFixed, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
		})
	}

	if ParsePreset("insane") != "" {
		t.Error("unknown preset should parse to empty")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("score:\n  rate: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile() error: %v", err)
	}
	defer w.Close() //nolint:errcheck // Test cleanup

	if err := os.WriteFile(path, []byte("score:\n  rate: 99\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates:
		if cfg.Score.Rate != 99 {
			t.Errorf("reloaded Rate = %v, expected 99", cfg.Score.Rate)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := WatchFile(path)
	if err != nil {
		t.Fatalf("WatchFile() error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
	_ = w.Close()

	select {
	case _, ok := <-w.Updates:
		if ok {
			t.Error("Updates should be closed")
		}
	case <-time.After(time.Second):
		t.Fatal("Updates not closed after Close")
	}
}
