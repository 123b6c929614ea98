package export

import "math"

// ApplyLoudnessNormalization scales left/right in place so the
// rendered buffer's integrated loudness reaches targetLUFS, clamping
// the applied gain so the resulting true peak never exceeds
// truePeakLimit dBTP.
func ApplyLoudnessNormalization(left, right []float32, currentLUFS, targetLUFS, truePeakLimit float64) {
	gainDB := targetLUFS - currentLUFS
	gain := dbToGain(gainDB)

	currentPeak := analyzeTruePeak(left, right)
	newPeak := currentPeak + gainDB
	if newPeak > truePeakLimit {
		reductionDB := newPeak - truePeakLimit
		gain *= dbToGain(-reductionDB)
	}

	applyGain(left, right, gain)
}

// ApplyPeakNormalization scales left/right in place so the rendered
// buffer's true peak reaches targetDB dBTP.
func ApplyPeakNormalization(left, right []float32, targetDB float64) {
	currentPeak := analyzeTruePeak(left, right)
	gain := dbToGain(targetDB - currentPeak)
	applyGain(left, right, gain)
}

func applyGain(left, right []float32, gain float64) {
	g := float32(gain)
	for i := range left {
		left[i] *= g
	}
	for i := range right {
		right[i] *= g
	}
}

func dbToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// analyzeTruePeak is a one-shot peak scan over a fully rendered buffer,
// distinct from metering.LoudnessMeter's streaming true-peak tracker —
// export normalization runs after rendering completes, over the whole
// buffer at once, not block by block.
func analyzeTruePeak(left, right []float32) float64 {
	peak := float32(0)
	for _, v := range left {
		if a := abs32(v); a > peak {
			peak = a
		}
	}
	for _, v := range right {
		if a := abs32(v); a > peak {
			peak = a
		}
	}
	if peak <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(float64(peak))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
