package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/dino-dash/internal/config"
)

const sampleRate = beep.SampleRate(44100)

// Engine plays cues and music through the system speaker.
// Until Init succeeds every call is a no-op, so a machine without an audio
// device still runs the game.
type Engine struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	music       *beep.Ctrl
	current     Track
	initialized bool
}

// NewEngine creates an engine. Call Init before expecting sound.
func NewEngine(cfg config.AudioConfig) *Engine {
	return &Engine{
		cfg:   cfg,
		music: &beep.Ctrl{Streamer: beep.Silence(-1)},
	}
}

// Init opens the speaker and starts the music slot.
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized || !e.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.music)
	e.initialized = true
	return nil
}

// Enabled reports whether the engine is producing sound.
func (e *Engine) Enabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// PlayCue mixes a one-shot effect over whatever is playing.
func (e *Engine) PlayCue(c Cue) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	if s := CueStreamer(c, e.cfg.SoundVolume, sampleRate); s != nil {
		speaker.Play(s)
	}
}

// PlayMusic swaps the music slot. Repeating the current track does nothing.
func (e *Engine) PlayMusic(t Track) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized || t == e.current {
		return
	}
	e.current = t

	next := TrackStreamer(t, e.cfg.MusicVolume, sampleRate)
	speaker.Lock()
	e.music.Streamer = next
	speaker.Unlock()
}

// Close silences all output. A later Init reopens the speaker.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Clear()
	e.music = &beep.Ctrl{Streamer: beep.Silence(-1)}
	e.current = TrackNone
	e.initialized = false
}
