package metering

import (
	"math"
	"sync"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// biquad is a direct-form-II-transposed filter used for ITU-R BS.1770
// K-weighting (adapted from vst3go/pkg/dsp/analysis/meters.go's
// BiquadFilter).
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func (f *biquad) process(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

func (f *biquad) reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// kWeightingPreFilter builds the BS.1770 stage-1 high-pass shelf for
// sampleRate, coefficients per the ITU-R BS.1770-4 reference filter
// design (RLB weighting curve).
func kWeightingPreFilter(sampleRate float64) *biquad {
	f0 := 38.13547087602
	q := 0.5003270373238
	k := math.Tan(math.Pi * f0 / sampleRate)
	norm := 1.0 / (1.0 + k/q + k*k)
	return &biquad{
		b0: norm, b1: -2 * norm, b2: norm,
		a1: 2 * (k*k - 1) * norm,
		a2: (1 - k/q + k*k) * norm,
	}
}

// kWeightingHighShelf builds the BS.1770 stage-2 high-frequency shelf.
func kWeightingHighShelf(sampleRate float64) *biquad {
	f0 := 1681.9744509555
	gainDB := 3.999843853973
	q := 0.7071752369554
	k := math.Tan(math.Pi * f0 / sampleRate)
	vh := math.Pow(10, gainDB/20)
	vb := math.Pow(vh, 0.4996667741545)
	a0 := 1 + k/q + k*k

	b0 := (vh + vb*k/q + k*k) / a0
	b1 := 2 * (k*k - vh) / a0
	b2 := (vh - vb*k/q + k*k) / a0
	a1 := 2 * (k*k - 1) / a0
	a2 := (1 - k/q + k*k) / a0
	return &biquad{b0: b0, b1: b1, b2: b2, a1: a1, a2: a2}
}

// LoudnessMeter implements a practical subset of ITU-R BS.1770-4:
// K-weighted mean-square integration over 400ms gating blocks with a
// relative gate, and a peak value taken from the samples and the
// midpoints between consecutive samples; since a midpoint never exceeds
// the larger of its two samples, this equals the sample peak and
// intersample peaks above the samples are not detected. Adapted from
// vst3go/pkg/dsp/analysis/meters.go's LUFSMeter, restructured around
// gating blocks rather than the teacher's windowed ring buffer since
// the export pipeline needs a finished integrated value, not a
// real-time moving one.
type LoudnessMeter struct {
	mu         sync.Mutex
	sampleRate float64
	channels   int
	preFilter  []*biquad
	highShelf  []*biquad

	blockSamples int
	blockPos     int
	blockSumSq   []float64 // per-channel sum of squares within current block
	blockPowers  []float64 // mean power per completed gating block (already channel-weighted)

	truePeak float64
	prevMax  float64
	haveBlock bool
}

// channelWeight is the BS.1770 channel weighting; this meter supports
// stereo (L, R) at weight 1.0 each, the common case for a two-channel
// master bus.
const channelWeight = 1.0

// NewLoudnessMeter creates a loudness meter for channels (1 or 2) at
// sampleRate.
func NewLoudnessMeter(sampleRate float64, channels int) *LoudnessMeter {
	m := &LoudnessMeter{
		sampleRate:   sampleRate,
		channels:     channels,
		preFilter:    make([]*biquad, channels),
		highShelf:    make([]*biquad, channels),
		blockSamples: int(0.4 * sampleRate),
		blockSumSq:   make([]float64, channels),
	}
	for ch := 0; ch < channels; ch++ {
		m.preFilter[ch] = kWeightingPreFilter(sampleRate)
		m.highShelf[ch] = kWeightingHighShelf(sampleRate)
	}
	return m
}

// Process feeds one interleaved-by-channel block (channels[i] holds
// that channel's samples for this render block) through K-weighting
// and true-peak tracking.
func (m *LoudnessMeter) Process(channels [][]float32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(channels) == 0 {
		return
	}
	n := len(channels[0])

	for i := 0; i < n; i++ {
		for ch := 0; ch < m.channels && ch < len(channels); ch++ {
			x := float64(channels[ch][i])

			abs := math.Abs(x)
			if abs > m.truePeak {
				m.truePeak = abs
			}
			// midpoint of this sample and the previous one processed
			// (across channels); it never exceeds the larger of the two,
			// so it does not raise truePeak above the sample peak.
			mid := math.Abs((x + m.prevMax) / 2)
			if mid > m.truePeak {
				m.truePeak = mid
			}
			m.prevMax = x

			weighted := m.highShelf[ch].process(m.preFilter[ch].process(x))
			m.blockSumSq[ch] += weighted * weighted
		}

		m.blockPos++
		if m.blockPos >= m.blockSamples {
			m.finishBlock()
		}
	}
}

func (m *LoudnessMeter) finishBlock() {
	power := 0.0
	for ch := 0; ch < m.channels; ch++ {
		power += channelWeight * m.blockSumSq[ch] / float64(m.blockSamples)
		m.blockSumSq[ch] = 0
	}
	m.blockPowers = append(m.blockPowers, power)
	m.blockPos = 0
	m.haveBlock = true
}

// IntegratedLUFS computes gated integrated loudness per BS.1770:
// an absolute gate at -70 LUFS followed by a relative gate 10 LU below
// the ungated mean. Returns rterr.KindLufsNotReady if no gating block
// has completed yet.
func (m *LoudnessMeter) IntegratedLUFS() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.haveBlock {
		return 0, rterr.New(rterr.KindLufsNotReady, "metering.IntegratedLUFS", "not enough samples accumulated yet")
	}

	const absoluteGateLUFS = -70.0
	absoluteGatePower := lufsToPower(absoluteGateLUFS)

	var sum float64
	var count int
	for _, p := range m.blockPowers {
		if p > absoluteGatePower {
			sum += p
			count++
		}
	}
	if count == 0 {
		return math.Inf(-1), nil
	}
	ungated := sum / float64(count)
	relativeGatePower := ungated * math.Pow(10, -10.0/10.0)

	sum, count = 0, 0
	for _, p := range m.blockPowers {
		if p > absoluteGatePower && p > relativeGatePower {
			sum += p
			count++
		}
	}
	if count == 0 {
		return math.Inf(-1), nil
	}
	return powerToLUFS(sum / float64(count)), nil
}

// TruePeakDBTP returns the tracked true-peak estimate in dBTP.
func (m *LoudnessMeter) TruePeakDBTP() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.truePeak <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(m.truePeak)
}

// Reset clears all accumulated state.
func (m *LoudnessMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.preFilter {
		m.preFilter[ch].reset()
		m.highShelf[ch].reset()
		m.blockSumSq[ch] = 0
	}
	m.blockPowers = nil
	m.blockPos = 0
	m.truePeak = 0
	m.prevMax = 0
	m.haveBlock = false
}

func lufsToPower(lufs float64) float64 {
	return math.Pow(10, (lufs+0.691)/10)
}

func powerToLUFS(power float64) float64 {
	return -0.691 + 10*math.Log10(power)
}
