package runner

import (
	"sync"
	"time"

	"github.com/vovakirdan/dino-dash/internal/config"
	"github.com/vovakirdan/dino-dash/internal/core"
)

// ModifierState is a consistent copy of the timed power-up effects.
type ModifierState struct {
	SpeedBoost      bool
	SpeedMultiplier float64 // 1 when no boost is active
	SpeedLeft       time.Duration
	Invincible      bool
	InvincibleLeft  time.Duration
}

// Modifiers owns the timed effects. Expiry callbacks arrive from the clock
// on other goroutines and only flip state under mu; the frame reads a copy
// through State.
type Modifiers struct {
	mu    sync.Mutex
	clock core.Clock
	cfg   config.PowerUpConfig
	epoch uint64 // Bumped by CancelAll; older callbacks are ignored

	speed      modifier
	invincible modifier
}

type modifier struct {
	active  bool
	gen     uint64 // Bumped on every activation; only the latest timer may expire it
	expires time.Time
	timer   core.Timer
}

// NewModifiers creates inactive modifiers scheduled on clock.
func NewModifiers(clock core.Clock, cfg config.PowerUpConfig) *Modifiers {
	return &Modifiers{clock: clock, cfg: cfg}
}

// ActivateSpeedBoost starts or restarts the speed boost.
func (m *Modifiers) ActivateSpeedBoost() {
	m.activate(&m.speed, seconds(m.cfg.SpeedDuration))
}

// ActivateInvincibility starts or restarts invincibility.
func (m *Modifiers) ActivateInvincibility() {
	m.activate(&m.invincible, seconds(m.cfg.InvincibilityDuration))
}

// activate restarts the duration without stacking the effect.
func (m *Modifiers) activate(mod *modifier, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mod.timer != nil {
		mod.timer.Stop()
	}
	mod.gen++
	mod.active = true
	mod.expires = m.clock.Now().Add(d)

	epoch, gen := m.epoch, mod.gen
	mod.timer = m.clock.AfterFunc(d, func() {
		m.expire(mod, epoch, gen)
	})
}

func (m *Modifiers) expire(mod *modifier, epoch, gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.epoch != epoch || mod.gen != gen {
		return
	}
	mod.active = false
	mod.timer = nil
}

// CancelAll stops every pending expiry and deactivates everything.
// Callbacks already in flight become no-ops.
func (m *Modifiers) CancelAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, mod := range []*modifier{&m.speed, &m.invincible} {
		if mod.timer != nil {
			mod.timer.Stop()
		}
		*mod = modifier{gen: mod.gen}
	}
	m.epoch++
}

// SetConfig replaces durations and magnitudes for future activations.
func (m *Modifiers) SetConfig(cfg config.PowerUpConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg = cfg
}

// State returns a copy of the current effects.
func (m *Modifiers) State() ModifierState {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	st := ModifierState{SpeedMultiplier: 1}
	if m.speed.active {
		st.SpeedBoost = true
		st.SpeedMultiplier = m.cfg.SpeedMultiplier
		st.SpeedLeft = remaining(m.speed.expires, now)
	}
	if m.invincible.active {
		st.Invincible = true
		st.InvincibleLeft = remaining(m.invincible.expires, now)
	}
	return st
}

func remaining(expires, now time.Time) time.Duration {
	if d := expires.Sub(now); d > 0 {
		return d
	}
	return 0
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
