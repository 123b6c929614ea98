package export

// ditherState carries the xorshift PRNG and noise-shaping error
// feedback across a buffer's worth of samples, one per channel
// (grounded on
// original_source/tutti-export/src/dsp/dither.rs's DitherState).
type ditherState struct {
	randomState uint32
	errorL      float32
	errorR      float32
	kind        DitherType
}

// newDitherState seeds the PRNG deterministically, matching the
// teacher source's fixed seed — export output should be
// bit-reproducible given the same input and options.
func newDitherState(kind DitherType) *ditherState {
	return &ditherState{randomState: 0x12345678, kind: kind}
}

func (s *ditherState) random() uint32 {
	x := s.randomState
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.randomState = x
	return x
}

func (s *ditherState) rectangularNoise() float32 {
	return float32(s.random())/float32(^uint32(0)) - 0.5
}

func (s *ditherState) triangularNoise() float32 {
	r1 := float32(s.random()) / float32(^uint32(0))
	r2 := float32(s.random()) / float32(^uint32(0))
	return r1 - r2
}

// applyDither adds dither noise in-place before bit-depth reduction to
// targetBits, shaped per state.kind. A no-op for DitherNone.
func applyDither(left, right []float32, targetBits int, state *ditherState) {
	if state.kind == DitherNone {
		return
	}

	maxValue := float32(int(1) << uint(targetBits-1))
	lsb := 1.0 / maxValue

	switch state.kind {
	case DitherRectangular:
		for i := range left {
			left[i] += state.rectangularNoise() * lsb
			right[i] += state.rectangularNoise() * lsb
		}
	case DitherTriangular:
		for i := range left {
			left[i] += state.triangularNoise() * lsb
			right[i] += state.triangularNoise() * lsb
		}
	case DitherNoiseShaped:
		for i := range left {
			ditherL := state.triangularNoise() * lsb
			ditherR := state.triangularNoise() * lsb

			shapedL := left[i] + ditherL - state.errorL*0.5
			shapedR := right[i] + ditherR - state.errorR*0.5

			quantizedL := roundToStep(shapedL, maxValue)
			quantizedR := roundToStep(shapedR, maxValue)

			state.errorL = quantizedL - left[i]
			state.errorR = quantizedR - right[i]

			left[i] = quantizedL
			right[i] = quantizedR
		}
	}
}

func roundToStep(v, maxValue float32) float32 {
	return float32(int32(v*maxValue+sign(v)*0.5)) / maxValue
}

func sign(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}
