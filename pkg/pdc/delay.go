// Package pdc implements plugin delay compensation (spec §4.5):
// per-edge latency accounting that inserts compensating delay units so
// signals arriving at a summing node stay phase-aligned.
package pdc

import "sync/atomic"

// MonoDelay is a 1-input, 1-output circular-buffer delay used to
// compensate a mono edge (grounded on
// original_source/pdc/mono_delay.rs's MonoPdcDelayUnit). It produces
// exact passthrough when its delay is zero and reports zero added
// latency from Route — it is the compensation, not something further
// paths must compensate for.
type MonoDelay struct {
	buffer       []float32
	writePos     int
	delaySamples atomic.Int64 // resized lazily in Tick/Process when changed
}

// NewMonoDelay creates a mono delay unit of the given sample count.
func NewMonoDelay(delaySamples int) *MonoDelay {
	d := &MonoDelay{buffer: make([]float32, maxInt(delaySamples, 1))}
	d.delaySamples.Store(int64(delaySamples))
	return d
}

// SetDelaySamples updates the delay length. Safe to call from a control
// thread; applied lazily on the next Tick/Process call, which resizes
// the buffer if needed.
func (d *MonoDelay) SetDelaySamples(samples int) {
	d.delaySamples.Store(int64(samples))
}

// DelaySamples returns the currently configured delay length.
func (d *MonoDelay) DelaySamples() int {
	return int(d.delaySamples.Load())
}

func (d *MonoDelay) resizeIfNeeded() {
	target := int(d.delaySamples.Load())
	if target == len(d.buffer) || (target == 0 && len(d.buffer) <= 1) {
		return
	}
	d.buffer = make([]float32, maxInt(target, 1))
	d.writePos = 0
}

func (d *MonoDelay) processSample(in float32) float32 {
	target := int(d.delaySamples.Load())
	if target == 0 {
		return in
	}
	out := d.buffer[d.writePos]
	d.buffer[d.writePos] = in
	d.writePos = (d.writePos + 1) % len(d.buffer)
	return out
}

// Inputs implements graph.AudioUnit.
func (d *MonoDelay) Inputs() int { return 1 }

// Outputs implements graph.AudioUnit.
func (d *MonoDelay) Outputs() int { return 1 }

// TypeID implements graph.AudioUnit. "MPDC" in hex, matching the
// original mono PDC delay unit's identifier.
func (d *MonoDelay) TypeID() uint64 { return 0x4D504443 }

// Tick implements graph.AudioUnit.
func (d *MonoDelay) Tick(input, output []float32) {
	d.resizeIfNeeded()
	var in float32
	if len(input) > 0 {
		in = input[0]
	}
	output[0] = d.processSample(in)
}

// Process implements graph.AudioUnit.
func (d *MonoDelay) Process(frames int, input, output [][]float32) {
	d.resizeIfNeeded()
	for i := 0; i < frames; i++ {
		output[0][i] = d.processSample(input[0][i])
	}
}

// Reset clears the delay buffer.
func (d *MonoDelay) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.writePos = 0
}

// SetSampleRate implements graph.AudioUnit. The delay operates in
// samples, not time, so sample rate has no effect on it.
func (d *MonoDelay) SetSampleRate(sampleRate float64) {}

// Route implements graph.AudioUnit. PDC delay units deliberately report
// zero added latency (spec §4.5) — they are themselves the
// compensation.
func (d *MonoDelay) Route(inputLatencies []int) []int {
	return []int{0}
}

// Footprint implements graph.AudioUnit.
func (d *MonoDelay) Footprint() int {
	return 32 + len(d.buffer)*4
}

// StereoDelay is a 2-input, 2-output circular-buffer delay for stereo
// edges (grounded on original_source/pdc/unit.rs's PdcDelayUnit).
type StereoDelay struct {
	left  MonoDelay
	right MonoDelay
}

// NewStereoDelay creates a stereo delay unit of the given sample count.
func NewStereoDelay(delaySamples int) *StereoDelay {
	return &StereoDelay{
		left:  *NewMonoDelay(delaySamples),
		right: *NewMonoDelay(delaySamples),
	}
}

// SetDelaySamples updates both channels' delay length.
func (d *StereoDelay) SetDelaySamples(samples int) {
	d.left.SetDelaySamples(samples)
	d.right.SetDelaySamples(samples)
}

// DelaySamples returns the configured delay length.
func (d *StereoDelay) DelaySamples() int {
	return d.left.DelaySamples()
}

// Inputs implements graph.AudioUnit.
func (d *StereoDelay) Inputs() int { return 2 }

// Outputs implements graph.AudioUnit.
func (d *StereoDelay) Outputs() int { return 2 }

// TypeID implements graph.AudioUnit. "PDCDE" in hex, matching the
// original stereo PDC delay unit's identifier.
func (d *StereoDelay) TypeID() uint64 { return 0x5044434445 }

// Tick implements graph.AudioUnit.
func (d *StereoDelay) Tick(input, output []float32) {
	var l, r float32
	if len(input) > 0 {
		l = input[0]
	}
	if len(input) > 1 {
		r = input[1]
	}
	d.left.resizeIfNeeded()
	d.right.resizeIfNeeded()
	output[0] = d.left.processSample(l)
	output[1] = d.right.processSample(r)
}

// Process implements graph.AudioUnit.
func (d *StereoDelay) Process(frames int, input, output [][]float32) {
	d.left.resizeIfNeeded()
	d.right.resizeIfNeeded()
	for i := 0; i < frames; i++ {
		output[0][i] = d.left.processSample(input[0][i])
		output[1][i] = d.right.processSample(input[1][i])
	}
}

// Reset clears both channels.
func (d *StereoDelay) Reset() {
	d.left.Reset()
	d.right.Reset()
}

// SetSampleRate implements graph.AudioUnit.
func (d *StereoDelay) SetSampleRate(sampleRate float64) {}

// Route implements graph.AudioUnit — zero added latency, same rationale
// as MonoDelay.
func (d *StereoDelay) Route(inputLatencies []int) []int {
	return []int{0, 0}
}

// Footprint implements graph.AudioUnit.
func (d *StereoDelay) Footprint() int {
	return d.left.Footprint() + d.right.Footprint()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
