package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType selects the oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// oscillator generates a fixed-length tone, optionally sweeping in pitch.
type oscillator struct {
	freq     float64
	sweep    float64 // Hz added per second
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    uint32
}

// NewOscillator creates a tone of the given frequency and length.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates a tone that glides linearly from one frequency to another.
func NewSweep(from, to float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	n := rate.N(duration)
	sweep := 0.0
	if duration > 0 {
		sweep = (to - from) / duration.Seconds()
	}
	return &oscillator{
		freq:     from,
		sweep:    sweep,
		duration: n,
		wave:     wave,
		rate:     rate,
		noise:    0x9E3779B9,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveNoise:
			// xorshift keeps noise deterministic and off the global rand source
			o.noise ^= o.noise << 13
			o.noise ^= o.noise >> 17
			o.noise ^= o.noise << 5
			val = float64(o.noise)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	totalSamples int
}

// NewEnvelope wraps s with an attack/release shape over duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	start := total - rel
	if start < att {
		start = att
	}
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: start,
		totalSamples: total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack && e.attack > 0 {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Zero volume is silent since log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note is a shaped tone with a short click-free envelope.
func note(freq float64, d time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(freq, d, wave, rate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, rate)
}

// CueStreamer builds the one-shot streamer for a cue at the given volume.
// Returns nil for unknown cues.
func CueStreamer(c Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch c {
	case CueJump:
		d := 120 * time.Millisecond
		s = NewEnvelope(NewSweep(330, 660, d, WaveSquare, rate), d, 5*time.Millisecond, 60*time.Millisecond, rate)
	case CueDoubleJump:
		d := 140 * time.Millisecond
		s = NewEnvelope(NewSweep(520, 1040, d, WaveSquare, rate), d, 5*time.Millisecond, 70*time.Millisecond, rate)
	case CuePowerUpCustomer:
		s = beep.Seq(note(659.25, 80*time.Millisecond, WaveSine, rate), note(880, 120*time.Millisecond, WaveSine, rate))
	case CuePowerUpAutomation:
		d := 250 * time.Millisecond
		s = NewEnvelope(NewSweep(200, 1200, d, WaveTriangle, rate), d, 10*time.Millisecond, 80*time.Millisecond, rate)
	case CuePowerUpAI:
		s = beep.Seq(
			note(523.25, 70*time.Millisecond, WaveSquare, rate),
			note(659.25, 70*time.Millisecond, WaveSquare, rate),
			note(783.99, 70*time.Millisecond, WaveSquare, rate),
			note(1046.5, 140*time.Millisecond, WaveSquare, rate),
		)
	case CuePowerUpKnowledge:
		d := 300 * time.Millisecond
		s = beep.Mix(
			newVolume(note(880, d, WaveSine, rate), 0.7),
			newVolume(note(1760, d, WaveSine, rate), 0.3),
		)
	case CueDeath:
		d := 450 * time.Millisecond
		s = beep.Mix(
			NewEnvelope(NewSweep(440, 80, d, WaveSquare, rate), d, 5*time.Millisecond, 200*time.Millisecond, rate),
			newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, 0, 300*time.Millisecond, rate), 0.3),
		)
	case CueDodge:
		s = note(1318.51, 40*time.Millisecond, WaveTriangle, rate)
	default:
		return nil
	}
	return newVolume(s, vol)
}

// arpeggio loops a note pattern forever at a fixed tempo.
type arpeggio struct {
	rate    beep.SampleRate
	notes   []float64
	step    int
	wave    WaveType
	pos     int
	phase   float64
	noteIdx int
}

func newArpeggio(notes []float64, step time.Duration, wave WaveType, rate beep.SampleRate) *arpeggio {
	return &arpeggio{rate: rate, notes: notes, step: rate.N(step), wave: wave}
}

func (a *arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		inNote := a.pos % a.step
		if inNote == 0 && a.pos > 0 {
			a.noteIdx = (a.noteIdx + 1) % len(a.notes)
		}
		freq := a.notes[a.noteIdx]

		// Per-note decay keeps consecutive notes distinct
		env := 1.0 - float64(inNote)/float64(a.step)

		var val float64
		switch a.wave {
		case WaveSquare:
			if a.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveTriangle:
			val = 4*math.Abs(a.phase-0.5) - 1
		default:
			val = math.Sin(2 * math.Pi * a.phase)
		}
		val *= env * 0.5

		samples[i][0] = val
		samples[i][1] = val
		a.phase += freq / float64(a.rate)
		a.phase -= math.Floor(a.phase)
		a.pos++
	}
	return len(samples), true
}

func (a *arpeggio) Err() error { return nil }

// TrackStreamer builds the streamer for a music track. Looping tracks never
// end; the game-over sting is followed by endless silence so the music slot
// stays alive for the next change.
func TrackStreamer(t Track, vol float64, rate beep.SampleRate) beep.Streamer {
	var s beep.Streamer
	switch t {
	case TrackBackground:
		s = newArpeggio([]float64{220, 277.18, 329.63, 277.18}, 200*time.Millisecond, WaveTriangle, rate)
	case TrackSpeedBoost:
		s = newArpeggio([]float64{329.63, 415.30, 493.88, 659.25}, 110*time.Millisecond, WaveSquare, rate)
	case TrackInvincible:
		s = newArpeggio([]float64{523.25, 659.25, 783.99, 1046.5, 783.99, 659.25}, 90*time.Millisecond, WaveSquare, rate)
	case TrackGameOver:
		s = beep.Seq(
			note(392, 250*time.Millisecond, WaveTriangle, rate),
			note(311.13, 250*time.Millisecond, WaveTriangle, rate),
			note(261.63, 600*time.Millisecond, WaveTriangle, rate),
			beep.Silence(-1),
		)
	default:
		return beep.Silence(-1)
	}
	return newVolume(s, vol)
}
