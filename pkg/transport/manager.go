package transport

import (
	"sync"
	"sync/atomic"

	"github.com/justyntemme/rtaudio/pkg/atomicx"
)

// MotionState is the transport's current motion state (spec §4.2).
type MotionState int32

const (
	Stopped MotionState = iota
	Rolling
	DeclickToStop
	DeclickToLocate
	FastForward
	Rewind
	Reverse
)

func (s MotionState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Rolling:
		return "rolling"
	case DeclickToStop:
		return "declick_to_stop"
	case DeclickToLocate:
		return "declick_to_locate"
	case FastForward:
		return "fast_forward"
	case Rewind:
		return "rewind"
	case Reverse:
		return "reverse"
	default:
		return "unknown"
	}
}

// DefaultDeclickSamples is the fixed fade window (spec §4.2, "a fixed
// sample window") applied at stop and declicked locate transitions.
const DefaultDeclickSamples = 256

// Manager owns transport motion state and drives the shared Clock
// through it (spec §4.2). The audio thread calls Tick once per sample;
// every other method is for control threads.
type Manager struct {
	clock *Clock

	state atomic.Int32 // MotionState

	loopStart   atomicx.Double
	loopEnd     atomicx.Double
	loopEnabled atomicx.Flag

	mu        sync.Mutex // guards scrub tempo restore only; never touched by the audio thread
	prevTempo float32

	declickSamples int
	fadeCounter    atomic.Int64
	pendingLocate  atomic.Uint64 // float64 bits, valid only during DeclickToLocate
}

// NewManager creates a Manager driving clock, stopped, with the default
// declick window.
func NewManager(clock *Clock) *Manager {
	return &Manager{clock: clock, declickSamples: DefaultDeclickSamples}
}

// MotionState returns the current motion state.
func (m *Manager) MotionState() MotionState {
	return MotionState(m.state.Load())
}

// IsPlaying reports whether the transport is rolling.
func (m *Manager) IsPlaying() bool {
	return m.MotionState() == Rolling
}

// IsStopped reports whether the transport is fully stopped.
func (m *Manager) IsStopped() bool {
	return m.MotionState() == Stopped
}

// IsPaused is a deprecated alias kept for API parity with the legacy
// handle surface; callers should prefer MotionState or IsStopped. Its
// behavior in DeclickToStop is left undefined by design — this reports
// the motion state is Stopped, matching stable, fully-halted transport.
//
// Deprecated: use MotionState or IsStopped.
func (m *Manager) IsPaused() bool {
	return m.IsStopped()
}

// Play transitions Stopped -> Rolling, clearing the paused flag.
func (m *Manager) Play() {
	m.state.Store(int32(Rolling))
	m.clock.SetPaused(false)
	m.clock.SetReverse(false)
}

// Stop transitions Rolling -> DeclickToStop, beginning a fade-out. Any
// other state stops immediately, since there is nothing rolling to fade.
func (m *Manager) Stop() {
	if m.MotionState() != Rolling {
		m.StopImmediate()
		return
	}
	m.fadeCounter.Store(0)
	m.state.Store(int32(DeclickToStop))
}

// StopImmediate transitions to Stopped with no fade, from any state.
func (m *Manager) StopImmediate() {
	m.state.Store(int32(Stopped))
	m.clock.SetPaused(true)
}

// Locate sets the beat position directly without a declick fade.
func (m *Manager) Locate(beat float64) {
	m.clock.SetCurrentBeat(beat)
}

// LocateAndPlay locates then starts playback.
func (m *Manager) LocateAndPlay(beat float64) {
	m.Locate(beat)
	m.Play()
}

// LocateWithDeclick fades out, repositions, and fades back in without an
// audible click. Only meaningful while Rolling; otherwise behaves like
// Locate.
func (m *Manager) LocateWithDeclick(beat float64) {
	if m.MotionState() != Rolling {
		m.Locate(beat)
		return
	}
	m.pendingLocate.Store(floatBits(beat))
	m.fadeCounter.Store(0)
	m.state.Store(int32(DeclickToLocate))
}

// FastForward transitions Rolling -> FastForward, scaling tempo up.
func (m *Manager) FastForward() {
	if m.MotionState() != Rolling {
		return
	}
	m.mu.Lock()
	m.prevTempo = m.clock.Tempo()
	m.mu.Unlock()
	m.clock.SetTempo(m.prevTempo * 4)
	m.state.Store(int32(FastForward))
}

// Rewind transitions Rolling -> Rewind, running the clock backward at
// increased speed.
func (m *Manager) Rewind() {
	if m.MotionState() != Rolling {
		return
	}
	m.mu.Lock()
	m.prevTempo = m.clock.Tempo()
	m.mu.Unlock()
	m.clock.SetTempo(m.prevTempo * 4)
	m.clock.SetReverse(true)
	m.state.Store(int32(Rewind))
}

// EndScrub restores normal tempo and direction, returning to Rolling
// from FastForward or Rewind.
func (m *Manager) EndScrub() {
	state := m.MotionState()
	if state != FastForward && state != Rewind {
		return
	}
	m.mu.Lock()
	m.clock.SetTempo(m.prevTempo)
	m.mu.Unlock()
	m.clock.SetReverse(false)
	m.state.Store(int32(Rolling))
}

// Reverse switches from Rolling to reverse playback. In any other
// state, including Reverse itself, it does nothing.
func (m *Manager) Reverse() {
	if m.MotionState() != Rolling {
		return
	}
	m.clock.SetReverse(true)
	m.state.Store(int32(Reverse))
}

// SetLoopRange sets the loop start/end beats.
func (m *Manager) SetLoopRange(start, end float64) {
	m.loopStart.Store(start)
	m.loopEnd.Store(end)
}

// SetLoopEnabled enables or disables looping.
func (m *Manager) SetLoopEnabled(enabled bool) {
	m.loopEnabled.Store(enabled)
}

// ToggleLoop flips the loop-enabled flag.
func (m *Manager) ToggleLoop() {
	m.loopEnabled.Store(!m.loopEnabled.Load())
}

// ClearLoop disables looping and clears the range.
func (m *Manager) ClearLoop() {
	m.loopEnabled.Store(false)
	m.loopStart.Store(0)
	m.loopEnd.Store(0)
}

// LoopRangeValue returns the current loop range and whether it is
// enabled.
func (m *Manager) LoopRangeValue() (LoopRange, bool) {
	enabled := m.loopEnabled.Load()
	return LoopRange{Start: m.loopStart.Load(), End: m.loopEnd.Load()}, enabled
}

// CurrentBeat returns the transport's current beat position.
func (m *Manager) CurrentBeat() float64 {
	return m.clock.CurrentBeat()
}

// SetCurrentBeat sets the beat position directly (bypasses the FSM's
// locate/declick path).
func (m *Manager) SetCurrentBeat(beat float64) {
	m.clock.SetCurrentBeat(beat)
}

// Tick advances the transport by one sample: it drives the clock, folds
// beat position into the loop range if enabled, runs declick fades, and
// returns the resulting beat signal and output gain multiplier the
// render callback applies to the block. Safe to call from the audio
// thread only; never allocates or blocks.
func (m *Manager) Tick() (beat float32, gain float32) {
	switch MotionState(m.state.Load()) {
	case Stopped:
		return float32(m.clock.CurrentBeat()), 0

	case DeclickToStop:
		b := m.clock.advance()
		b = m.wrapLoop(b)
		n := m.fadeCounter.Add(1)
		g := 1 - float32(n)/float32(m.declickSamples)
		if g <= 0 {
			m.state.Store(int32(Stopped))
			m.clock.SetPaused(true)
			return b, 0
		}
		return b, g

	case DeclickToLocate:
		n := m.fadeCounter.Add(1)
		half := int64(m.declickSamples / 2)
		if n == half {
			m.clock.SetCurrentBeat(floatFromBits(m.pendingLocate.Load()))
		}
		b := m.clock.advance()
		b = m.wrapLoop(b)
		var g float32
		switch {
		case n < half:
			g = 1 - float32(n)/float32(half)
		case n >= int64(m.declickSamples):
			m.state.Store(int32(Rolling))
			g = 1
		default:
			g = float32(n-half) / float32(int64(m.declickSamples)-half)
		}
		return b, g

	default: // Rolling, FastForward, Rewind, Reverse
		b := m.clock.advance()
		b = m.wrapLoop(b)
		return b, 1
	}
}

func (m *Manager) wrapLoop(beat float32) float32 {
	if !m.loopEnabled.Load() {
		return beat
	}
	loop := LoopRange{Start: m.loopStart.Load(), End: m.loopEnd.Load()}
	if loop.End <= loop.Start {
		return beat
	}
	wrapped := loop.Wrap(float64(beat))
	if wrapped != float64(beat) {
		m.clock.SetCurrentBeat(wrapped)
	}
	return float32(wrapped)
}
