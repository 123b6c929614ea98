package transport

import "math"

// LoopRange is an optional [start, end) beat range the transport wraps
// playback position into once enabled (spec §4.2).
type LoopRange struct {
	Start float64
	End   float64
}

// Wrap maps beat into [r.Start, r.End) via
// start + ((beat - start) mod (end - start)), matching the spec's loop
// semantics exactly, including for beat values below Start (a negative
// Go Mod result is shifted back into range).
func (r LoopRange) Wrap(beat float64) float64 {
	span := r.End - r.Start
	if span <= 0 {
		return beat
	}
	offset := math.Mod(beat-r.Start, span)
	if offset < 0 {
		offset += span
	}
	return r.Start + offset
}
