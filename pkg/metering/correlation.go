package metering

import (
	"math"
	"sync"
)

// CorrelationMeter tracks stereo correlation over a sliding window,
// adapted from vst3go/pkg/dsp/analysis/correlation.go's
// CorrelationMeter.
type CorrelationMeter struct {
	mu            sync.Mutex
	windowSize    int
	bufferL       []float64
	bufferR       []float64
	writePos      int
	count         int
	correlation   float64
	averaging     float64
	peakHold      float64
	peakHoldTime  float64
	peakHoldCount int
	sampleRate    float64
}

// NewCorrelationMeter creates a correlation meter over windowSizeSamples.
func NewCorrelationMeter(windowSizeSamples int, sampleRate float64) *CorrelationMeter {
	return &CorrelationMeter{
		windowSize:   windowSizeSamples,
		bufferL:      make([]float64, windowSizeSamples),
		bufferR:      make([]float64, windowSizeSamples),
		averaging:    0.9,
		peakHoldTime: 3.0,
		sampleRate:   sampleRate,
		peakHold:     1.0,
	}
}

// Process folds a stereo block into the correlation window.
func (cm *CorrelationMeter) Process(left, right []float32) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if len(left) != len(right) {
		return
	}

	wasFull := cm.count == cm.windowSize
	for i := range left {
		cm.bufferL[cm.writePos] = float64(left[i])
		cm.bufferR[cm.writePos] = float64(right[i])
		cm.writePos = (cm.writePos + 1) % cm.windowSize
		if cm.count < cm.windowSize {
			cm.count++
		}
	}

	if cm.count == cm.windowSize {
		corr := cm.calculateCorrelation()
		if wasFull {
			cm.correlation = cm.correlation*cm.averaging + corr*(1-cm.averaging)
		} else {
			// First full window: seed the smoothed value directly.
			cm.correlation = corr
		}

		if corr < cm.peakHold {
			cm.peakHold = corr
			cm.peakHoldCount = int(cm.peakHoldTime * cm.sampleRate / float64(cm.windowSize))
		} else {
			cm.peakHoldCount--
			if cm.peakHoldCount <= 0 {
				cm.peakHold = cm.correlation
				cm.peakHoldCount = 0
			}
		}
	}
}

func (cm *CorrelationMeter) calculateCorrelation() float64 {
	meanL, meanR := 0.0, 0.0
	for i := 0; i < cm.count; i++ {
		meanL += cm.bufferL[i]
		meanR += cm.bufferR[i]
	}
	meanL /= float64(cm.count)
	meanR /= float64(cm.count)

	numerator, varL, varR := 0.0, 0.0, 0.0
	for i := 0; i < cm.count; i++ {
		dl := cm.bufferL[i] - meanL
		dr := cm.bufferR[i] - meanR
		numerator += dl * dr
		varL += dl * dl
		varR += dr * dr
	}

	if varL == 0 || varR == 0 {
		if varL == 0 && varR == 0 {
			return 1.0
		}
		return 0.0
	}

	corr := numerator / (math.Sqrt(varL) * math.Sqrt(varR))
	if corr > 1.0 {
		corr = 1.0
	} else if corr < -1.0 {
		corr = -1.0
	}
	return corr
}

// Correlation returns the current correlation, -1..1.
func (cm *CorrelationMeter) Correlation() float64 {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.correlation
}

// PeakHold returns the most negative (worst) correlation seen within
// the hold window.
func (cm *CorrelationMeter) PeakHold() float64 {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.peakHold
}

// MonoCompatibility maps correlation from [-1,1] to [0,1], 1 being
// perfectly mono-compatible.
func (cm *CorrelationMeter) MonoCompatibility() float64 {
	return (cm.Correlation() + 1.0) / 2.0
}

// Reset clears the correlation window and state.
func (cm *CorrelationMeter) Reset() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	for i := range cm.bufferL {
		cm.bufferL[i], cm.bufferR[i] = 0, 0
	}
	cm.writePos, cm.count = 0, 0
	cm.correlation, cm.peakHold, cm.peakHoldCount = 0, 0, 0
}
