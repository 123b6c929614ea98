package transport

import "github.com/justyntemme/rtaudio/pkg/atomicx"

// MetronomeMode controls when the metronome click is audible.
type MetronomeMode int

const (
	MetronomeOff MetronomeMode = iota
	MetronomeAlways
	MetronomeRecordingOnly
	MetronomePrerollOnly
)

// Metronome is a small piece of transport-adjacent click-track state,
// named in the engine's transport handle surface alongside tempo and
// loop range. It does not itself generate audio — it is a set of atomic
// settings a click-generator node reads each block.
type Metronome struct {
	volume      atomicx.Float
	accentEvery atomicx.Double // stored as float64 for the shared atomic type; always an integer value
	mode        atomicx.Double // Kind stored as float64; cheap and avoids a bespoke atomic-int type
}

// NewMetronome creates a metronome at full volume, accenting every 4
// beats, off by default.
func NewMetronome() *Metronome {
	m := &Metronome{}
	m.volume.Store(1.0)
	m.accentEvery.Store(4)
	m.mode.Store(float64(MetronomeOff))
	return m
}

// SetVolume sets click volume in [0, 1].
func (m *Metronome) SetVolume(v float32) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	m.volume.Store(v)
}

// Volume returns the current click volume.
func (m *Metronome) Volume() float32 {
	return m.volume.Load()
}

// SetAccentEvery sets how many beats pass between accented clicks.
func (m *Metronome) SetAccentEvery(beats uint32) {
	m.accentEvery.Store(float64(beats))
}

// AccentEvery returns the current accent interval in beats.
func (m *Metronome) AccentEvery() uint32 {
	return uint32(m.accentEvery.Load())
}

// SetMode sets when the click is audible.
func (m *Metronome) SetMode(mode MetronomeMode) {
	m.mode.Store(float64(mode))
}

// Mode returns the current metronome mode.
func (m *Metronome) Mode() MetronomeMode {
	return MetronomeMode(m.mode.Load())
}
