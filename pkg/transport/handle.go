package transport

// MetronomeHandle is a fluent configuration surface for a Metronome
// (grounded on original_source/transport/handle.rs's MetronomeHandle,
// adapted to Go's pointer-receiver idiom in place of Rust's
// ownership-moving `self`).
type MetronomeHandle struct {
	metronome *Metronome
}

func newMetronomeHandle(m *Metronome) MetronomeHandle {
	return MetronomeHandle{metronome: m}
}

// Volume sets click volume and returns the handle for chaining.
func (h MetronomeHandle) Volume(v float32) MetronomeHandle {
	h.metronome.SetVolume(v)
	return h
}

// GetVolume returns the current click volume.
func (h MetronomeHandle) GetVolume() float32 {
	return h.metronome.Volume()
}

// AccentEvery sets the accent interval in beats and returns the handle
// for chaining.
func (h MetronomeHandle) AccentEvery(beats uint32) MetronomeHandle {
	h.metronome.SetAccentEvery(beats)
	return h
}

// GetAccentEvery returns the current accent interval.
func (h MetronomeHandle) GetAccentEvery() uint32 {
	return h.metronome.AccentEvery()
}

// Mode sets the metronome mode and returns the handle for chaining.
func (h MetronomeHandle) Mode(mode MetronomeMode) MetronomeHandle {
	h.metronome.SetMode(mode)
	return h
}

// GetMode returns the current metronome mode.
func (h MetronomeHandle) GetMode() MetronomeMode {
	return h.metronome.Mode()
}

// Off disables the metronome.
func (h MetronomeHandle) Off() MetronomeHandle { return h.Mode(MetronomeOff) }

// Always enables the metronome unconditionally.
func (h MetronomeHandle) Always() MetronomeHandle { return h.Mode(MetronomeAlways) }

// RecordingOnly enables the metronome only while recording.
func (h MetronomeHandle) RecordingOnly() MetronomeHandle { return h.Mode(MetronomeRecordingOnly) }

// PrerollOnly enables the metronome only during preroll.
func (h MetronomeHandle) PrerollOnly() MetronomeHandle { return h.Mode(MetronomePrerollOnly) }

// Handle is the fluent transport control surface exposed by
// Engine.Transport() (spec §6): tempo, play/stop/locate/scrub, loop
// range, position, and state queries, plus access to the metronome.
type Handle struct {
	manager   *Manager
	metronome *Metronome
}

// NewHandle wraps a Manager and Metronome in a fluent handle.
func NewHandle(manager *Manager, metronome *Metronome) Handle {
	return Handle{manager: manager, metronome: metronome}
}

// Tempo sets tempo in BPM and returns the handle for chaining.
func (h Handle) Tempo(bpm float32) Handle {
	h.manager.clock.SetTempo(bpm)
	return h
}

// GetTempo returns the current tempo in BPM.
func (h Handle) GetTempo() float32 {
	return h.manager.clock.Tempo()
}

// Play starts playback.
func (h Handle) Play() Handle {
	h.manager.Play()
	return h
}

// Stop stops playback with a declick fade.
func (h Handle) Stop() Handle {
	h.manager.Stop()
	return h
}

// StopImmediate stops playback immediately with no fade.
func (h Handle) StopImmediate() Handle {
	h.manager.StopImmediate()
	return h
}

// Locate repositions to beat with no declick fade.
func (h Handle) Locate(beat float64) Handle {
	h.manager.Locate(beat)
	return h
}

// LocateAndPlay repositions to beat and starts playback.
func (h Handle) LocateAndPlay(beat float64) Handle {
	h.manager.LocateAndPlay(beat)
	return h
}

// LocateWithDeclick repositions to beat with a fade-out/fade-in.
func (h Handle) LocateWithDeclick(beat float64) Handle {
	h.manager.LocateWithDeclick(beat)
	return h
}

// FastForward starts fast-forward scrub.
func (h Handle) FastForward() Handle {
	h.manager.FastForward()
	return h
}

// Rewind starts rewind scrub.
func (h Handle) Rewind() Handle {
	h.manager.Rewind()
	return h
}

// EndScrub ends fast-forward/rewind scrub, restoring normal playback.
func (h Handle) EndScrub() Handle {
	h.manager.EndScrub()
	return h
}

// Reverse switches from Rolling to reverse playback; in any other
// state it does nothing.
func (h Handle) Reverse() Handle {
	h.manager.Reverse()
	return h
}

// LoopRange sets the loop start/end beats.
func (h Handle) LoopRange(start, end float64) Handle {
	h.manager.SetLoopRange(start, end)
	return h
}

// EnableLoop enables looping.
func (h Handle) EnableLoop() Handle {
	h.manager.SetLoopEnabled(true)
	return h
}

// DisableLoop disables looping.
func (h Handle) DisableLoop() Handle {
	h.manager.SetLoopEnabled(false)
	return h
}

// ToggleLoop flips the loop-enabled flag.
func (h Handle) ToggleLoop() Handle {
	h.manager.ToggleLoop()
	return h
}

// ClearLoop disables looping and clears the range.
func (h Handle) ClearLoop() Handle {
	h.manager.ClearLoop()
	return h
}

// GetLoopRange returns the loop range and whether it is enabled.
func (h Handle) GetLoopRange() (LoopRange, bool) {
	return h.manager.LoopRangeValue()
}

// CurrentBeat returns the current beat position.
func (h Handle) CurrentBeat() float64 {
	return h.manager.CurrentBeat()
}

// SetCurrentBeat sets the beat position directly.
func (h Handle) SetCurrentBeat(beat float64) Handle {
	h.manager.SetCurrentBeat(beat)
	return h
}

// IsPlaying reports whether the transport is rolling.
func (h Handle) IsPlaying() bool {
	return h.manager.IsPlaying()
}

// IsStopped reports whether the transport is fully stopped.
func (h Handle) IsStopped() bool {
	return h.manager.IsStopped()
}

// IsSeeking reports whether the transport is mid-declick-locate.
func (h Handle) IsSeeking() bool {
	return h.manager.MotionState() == DeclickToLocate
}

// IsStopping reports whether the transport is mid-declick-stop.
func (h Handle) IsStopping() bool {
	return h.manager.MotionState() == DeclickToStop
}

// IsFastForwarding reports whether the transport is scrubbing forward.
func (h Handle) IsFastForwarding() bool {
	return h.manager.MotionState() == FastForward
}

// IsRewinding reports whether the transport is scrubbing backward.
func (h Handle) IsRewinding() bool {
	return h.manager.MotionState() == Rewind
}

// MotionState returns the current motion state.
func (h Handle) MotionState() MotionState {
	return h.manager.MotionState()
}

// IsPaused reports the deprecated paused boolean.
//
// Deprecated: use MotionState or IsStopped.
func (h Handle) IsPaused() bool {
	return h.manager.IsPaused()
}

// Metronome returns a fluent handle for metronome configuration.
func (h Handle) Metronome() MetronomeHandle {
	return newMetronomeHandle(h.metronome)
}

// Manager returns the underlying Manager for advanced use.
func (h Handle) Manager() *Manager {
	return h.manager
}
