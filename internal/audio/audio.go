// Package audio turns game events into sound.
//
// The simulation only talks to a Sink. Engine is the speaker-backed sink,
// Nop discards everything and Recorder keeps a log for tests.
package audio

import "sync"

// Cue is a one-shot sound effect.
type Cue int

const (
	CueJump Cue = iota
	CueDoubleJump
	CuePowerUpCustomer
	CuePowerUpAutomation
	CuePowerUpAI
	CuePowerUpKnowledge
	CueDeath
	CueDodge
)

var cueNames = map[Cue]string{
	CueJump:              "jump",
	CueDoubleJump:        "double_jump",
	CuePowerUpCustomer:   "powerup_customer",
	CuePowerUpAutomation: "powerup_automation",
	CuePowerUpAI:         "powerup_ai",
	CuePowerUpKnowledge:  "powerup_knowledge",
	CueDeath:             "death",
	CueDodge:             "dodge",
}

func (c Cue) String() string {
	if name, ok := cueNames[c]; ok {
		return name
	}
	return "unknown"
}

// Track is a background music selection. Only one plays at a time.
type Track int

const (
	TrackNone Track = iota
	TrackBackground
	TrackSpeedBoost
	TrackInvincible
	TrackGameOver
)

func (t Track) String() string {
	switch t {
	case TrackBackground:
		return "background"
	case TrackSpeedBoost:
		return "speed_boost"
	case TrackInvincible:
		return "invincible"
	case TrackGameOver:
		return "game_over"
	default:
		return "none"
	}
}

// Sink receives audio events from the simulation.
// Implementations must not block the caller.
type Sink interface {
	PlayCue(c Cue)
	PlayMusic(t Track)
}

// Nop is a Sink that discards everything.
type Nop struct{}

func (Nop) PlayCue(Cue)     {}
func (Nop) PlayMusic(Track) {}

// Recorder is a Sink that remembers what it was asked to play.
type Recorder struct {
	mu     sync.Mutex
	cues   []Cue
	tracks []Track
}

func (r *Recorder) PlayCue(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *Recorder) PlayMusic(t Track) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracks = append(r.tracks, t)
}

// Cues returns a copy of the recorded cues in order.
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Cue(nil), r.cues...)
}

// Tracks returns a copy of the recorded music changes in order.
func (r *Recorder) Tracks() []Track {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Track(nil), r.tracks...)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// LastTrack returns the most recent music change, or TrackNone.
func (r *Recorder) LastTrack() Track {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tracks) == 0 {
		return TrackNone
	}
	return r.tracks[len(r.tracks)-1]
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = nil
	r.tracks = nil
}
