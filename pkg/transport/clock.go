// Package transport implements the musical clock and transport state
// machine (spec §4.1, §4.2): a lock-free tick source the audio thread
// advances every sample, and a motion-state manager the control thread
// drives through play/stop/locate/loop actions.
package transport

import "github.com/justyntemme/rtaudio/pkg/atomicx"

// Clock is the smallest unit of the system: a shared tempo, paused
// flag, and current beat position, advanced one sample at a time. It
// implements graph.AudioUnit with 0 inputs, 1 output, and zero latency
// — the clock is a signal source, not a side effect, so graph nodes can
// sample-accurately drive envelopes and automation readers from it.
type Clock struct {
	tempo      atomicx.Float  // BPM
	paused     atomicx.Flag
	currentBeat atomicx.Double
	sampleRate float64
	reverse    atomicx.Flag
}

// NewClock creates a clock fixed to sampleRate, starting at the given
// tempo in BPM, paused.
func NewClock(sampleRate float64, tempoBPM float32) *Clock {
	c := &Clock{sampleRate: sampleRate}
	c.tempo.Store(tempoBPM)
	c.paused.Store(true)
	return c
}

// SetTempo updates the tempo in BPM. Takes effect on the next Tick with
// no discontinuity — the clock reads tempo fresh on every call.
func (c *Clock) SetTempo(bpm float32) {
	c.tempo.Store(bpm)
}

// Tempo returns the current tempo in BPM.
func (c *Clock) Tempo() float32 {
	return c.tempo.Load()
}

// SetPaused sets the paused flag.
func (c *Clock) SetPaused(paused bool) {
	c.paused.Store(paused)
}

// Paused reports whether the clock is currently paused.
func (c *Clock) Paused() bool {
	return c.paused.Load()
}

// SetReverse sets whether the clock advances beat position backward.
func (c *Clock) SetReverse(reverse bool) {
	c.reverse.Store(reverse)
}

// CurrentBeat returns the current beat position.
func (c *Clock) CurrentBeat() float64 {
	return c.currentBeat.Load()
}

// SetCurrentBeat sets the beat position directly (used by locate).
func (c *Clock) SetCurrentBeat(beat float64) {
	c.currentBeat.Store(beat)
}

// advance moves current_beat by tempo/60/sample_rate unless paused, and
// returns the new beat position as a control signal. Safe to call from
// the audio thread; never allocates or blocks.
func (c *Clock) advance() float32 {
	if c.paused.Load() {
		return float32(c.currentBeat.Load())
	}
	increment := float64(c.tempo.Load()) / 60 / c.sampleRate
	if c.reverse.Load() {
		increment = -increment
	}
	next := c.currentBeat.Load() + increment
	c.currentBeat.Store(next)
	return float32(next)
}

// Inputs implements graph.AudioUnit.
func (c *Clock) Inputs() int { return 0 }

// Outputs implements graph.AudioUnit.
func (c *Clock) Outputs() int { return 1 }

// TypeID implements graph.AudioUnit.
func (c *Clock) TypeID() uint64 { return typeIDClock }

// Tick implements graph.AudioUnit, computing one sample frame.
func (c *Clock) Tick(input, output []float32) {
	output[0] = c.advance()
}

// Process implements graph.AudioUnit.
func (c *Clock) Process(frames int, input, output [][]float32) {
	for i := 0; i < frames; i++ {
		output[0][i] = c.advance()
	}
}

// Reset restores the clock to beat zero, paused.
func (c *Clock) Reset() {
	c.currentBeat.Store(0)
	c.paused.Store(true)
	c.reverse.Store(false)
}

// SetSampleRate implements graph.AudioUnit.
func (c *Clock) SetSampleRate(sampleRate float64) {
	c.sampleRate = sampleRate
}

// Route implements graph.AudioUnit — the clock introduces zero latency.
func (c *Clock) Route(inputLatencies []int) []int {
	return []int{0}
}

// Footprint implements graph.AudioUnit.
func (c *Clock) Footprint() int {
	return 32
}

const typeIDClock uint64 = 0x636c6f636b // "clock"
