// Package export implements the offline render pipeline: a simulated
// transport timeline that advances by sample count rather than
// wall-clock time, plus WAV encoding, dithering, and loudness
// normalization for the rendered result (spec §4.8).
package export

import (
	"math"

	"github.com/justyntemme/rtaudio/pkg/atomicx"
)

// TimelineConfig configures a Timeline.
type TimelineConfig struct {
	StartBeat float64
	TempoBPM  float32
	SampleRate float64
	LoopStart, LoopEnd float64
	LoopEnabled        bool
}

// Timeline is a simulated transport for offline render: beat position
// advances deterministically with Advance(samples) rather than a
// real-time clock, so the same render always produces the same
// output (grounded on
// original_source/tutti-core/src/transport/export_timeline.rs's
// ExportTimeline).
type Timeline struct {
	currentBeat    atomicx.Double
	tempo          atomicx.Float
	sampleRate     float64
	beatsPerSample float64
	loopStart      atomicx.Double
	loopEnd        atomicx.Double
	loopEnabled    atomicx.Flag
}

// NewTimeline creates a Timeline from cfg.
func NewTimeline(cfg TimelineConfig) *Timeline {
	t := &Timeline{sampleRate: cfg.SampleRate}
	t.currentBeat.Store(cfg.StartBeat)
	t.tempo.Store(cfg.TempoBPM)
	t.beatsPerSample = float64(cfg.TempoBPM) / 60.0 / cfg.SampleRate
	t.loopStart.Store(cfg.LoopStart)
	t.loopEnd.Store(cfg.LoopEnd)
	t.loopEnabled.Store(cfg.LoopEnabled)
	return t
}

// Advance moves the timeline forward by samples, wrapping into the
// configured loop range if enabled.
func (t *Timeline) Advance(samples int) {
	beat := t.currentBeat.Load() + float64(samples)*t.beatsPerSample

	if t.loopEnabled.Load() {
		start := t.loopStart.Load()
		end := t.loopEnd.Load()
		if beat >= end {
			length := end - start
			if length > 0 {
				beat = start + math.Mod(beat-start, length)
			}
		}
	}

	t.currentBeat.Store(beat)
}

// CurrentBeat implements midi.BeatSource and transport.Handle's read
// surface, so graph nodes that consume transport state work
// transparently during offline render.
func (t *Timeline) CurrentBeat() float64 { return t.currentBeat.Load() }

// Tempo returns the configured tempo in BPM.
func (t *Timeline) Tempo() float32 { return t.tempo.Load() }

// SampleRate returns the configured sample rate.
func (t *Timeline) SampleRate() float64 { return t.sampleRate }

// Reset rewinds the timeline to startBeat.
func (t *Timeline) Reset(startBeat float64) {
	t.currentBeat.Store(startBeat)
}

// BeatsPerSample returns the precomputed per-sample beat increment.
func (t *Timeline) BeatsPerSample() float64 { return t.beatsPerSample }

// IsPlaying always reports true: an export timeline is always
// advancing, there is no paused state during offline render.
func (t *Timeline) IsPlaying() bool { return true }

// IsLoopEnabled reports whether loop wrap is active.
func (t *Timeline) IsLoopEnabled() bool { return t.loopEnabled.Load() }

// LoopRange returns the configured loop bounds and whether looping is
// enabled.
func (t *Timeline) LoopRange() (start, end float64, enabled bool) {
	return t.loopStart.Load(), t.loopEnd.Load(), t.loopEnabled.Load()
}
