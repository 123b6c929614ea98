package export

import "testing"

func TestApplyDitherNoneIsNoop(t *testing.T) {
	left := []float32{0.5, -0.5, 0.25}
	right := []float32{0.5, -0.5, 0.25}
	origLeft := append([]float32(nil), left...)
	origRight := append([]float32(nil), right...)

	state := newDitherState(DitherNone)
	applyDither(left, right, 16, state)

	for i := range left {
		if left[i] != origLeft[i] || right[i] != origRight[i] {
			t.Fatalf("expected DitherNone to leave samples unchanged")
		}
	}
}

func TestApplyDitherRectangularIsBounded(t *testing.T) {
	left := make([]float32, 1000)
	right := make([]float32, 1000)
	state := newDitherState(DitherRectangular)
	applyDither(left, right, 16, state)

	maxNoise := float32(1.0 / 32768.0)
	for _, v := range left {
		if v < -maxNoise*2 || v > maxNoise*2 {
			t.Fatalf("rectangular dither noise exceeds expected bound: %v", v)
		}
	}
}

func TestApplyDitherNoiseShapedFeedsBackError(t *testing.T) {
	left := make([]float32, 100)
	right := make([]float32, 100)
	state := newDitherState(DitherNoiseShaped)
	applyDither(left, right, 16, state)

	if state.errorL == 0 && state.errorR == 0 {
		t.Errorf("expected noise-shaping to accumulate nonzero quantization error")
	}
}

func TestDitherIsDeterministic(t *testing.T) {
	left1 := make([]float32, 50)
	right1 := make([]float32, 50)
	left2 := make([]float32, 50)
	right2 := make([]float32, 50)

	applyDither(left1, right1, 16, newDitherState(DitherTriangular))
	applyDither(left2, right2, 16, newDitherState(DitherTriangular))

	for i := range left1 {
		if left1[i] != left2[i] || right1[i] != right2[i] {
			t.Fatalf("expected fixed-seed dither to be reproducible at index %d", i)
		}
	}
}
