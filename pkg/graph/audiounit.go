// Package graph implements the signal-processing graph front-end and its
// compiled backend (spec §4.3, §4.4): a mutable builder the control
// thread edits, and an immutable, hot-swappable snapshot the audio
// thread processes through a single atomically-swapped pointer.
package graph

// AudioUnit is the polymorphic capability set every node in the graph
// implements (spec §3). The engine treats implementations opaquely —
// oscillators, filters, synths, and PDC delay units are all AudioUnits.
type AudioUnit interface {
	// Inputs returns the number of input ports.
	Inputs() int
	// Outputs returns the number of output ports.
	Outputs() int
	// TypeID is a stable 64-bit identifier for the concrete unit type,
	// used by the MIDI registry to key pending events and by the node
	// registry for diagnostics.
	TypeID() uint64

	// Tick computes one sample frame. len(input) == Inputs(),
	// len(output) == Outputs().
	Tick(input, output []float32)
	// Process computes a block of frames. input[p] and output[p] are
	// per-port sample slices of length frames.
	Process(frames int, input, output [][]float32)

	// Reset clears internal state (filter memory, delay buffers, voice
	// allocations).
	Reset()
	// SetSampleRate notifies the unit of the engine's sample rate.
	SetSampleRate(sampleRate float64)

	// Route reports, for each output port, the accumulated latency in
	// samples given the latency arriving at each input port. Units with
	// no inherent latency return the max of their input latencies;
	// units that introduce delay (filters with look-ahead, PDC
	// compensation units) adjust accordingly. PDC delay units
	// deliberately report zero added latency — they are the
	// compensation, not something to compensate for (spec §4.5).
	Route(inputLatencies []int) []int

	// Footprint estimates the unit's memory footprint in bytes, used by
	// NodeInfo for diagnostics.
	Footprint() int
}

// UnitID returns a stable identifier used as the MIDI registry key for a
// unit. By default this is the unit's TypeID; units that need a unique
// per-instance key (e.g. two synths of the same type in one graph)
// should implement UnitIdentifiable.
func UnitID(u AudioUnit) uint64 {
	if ui, ok := u.(UnitIdentifiable); ok {
		return ui.UnitID()
	}
	return u.TypeID()
}

// UnitIdentifiable is implemented by AudioUnits that need a per-instance
// identity distinct from their type, e.g. for MIDI routing when a graph
// contains multiple instances of the same synth type.
type UnitIdentifiable interface {
	UnitID() uint64
}
