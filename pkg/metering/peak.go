// Package metering reads the render callback's just-produced output
// block (a pure consumer — it never feeds back into the graph) and
// maintains peak, RMS, correlation, loudness, and CPU-load meters for
// the control thread to poll (spec §1/§6, the metering collaborator).
package metering

import (
	"math"
	"sync"
)

// PeakMeter tracks a decaying peak level and a longer peak-hold value,
// adapted from vst3go/pkg/dsp/analysis/meters.go's PeakMeter to
// operate on float32 engine buffers.
type PeakMeter struct {
	mu         sync.Mutex
	peak       float64
	hold       float64
	holdTime   float64
	decayRate  float64
	sampleRate float64
	holdCount  int
}

// NewPeakMeter creates a peak meter at sampleRate with a 3 second hold
// and 20 dB/s decay, the teacher's defaults.
func NewPeakMeter(sampleRate float64) *PeakMeter {
	return &PeakMeter{sampleRate: sampleRate, holdTime: 3.0, decayRate: 20.0}
}

// Process folds one block of samples into the running peak.
func (pm *PeakMeter) Process(samples []float32) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	blockPeak := 0.0
	for _, s := range samples {
		abs := math.Abs(float64(s))
		if abs > blockPeak {
			blockPeak = abs
		}
	}

	decayPerSample := pm.decayRate / pm.sampleRate / 20.0 * math.Log(10)
	pm.peak *= math.Exp(-decayPerSample * float64(len(samples)))
	if blockPeak > pm.peak {
		pm.peak = blockPeak
	}

	if blockPeak > pm.hold {
		pm.hold = blockPeak
		pm.holdCount = int(pm.holdTime * pm.sampleRate)
	} else {
		pm.holdCount -= len(samples)
		if pm.holdCount <= 0 {
			pm.hold = pm.peak
			pm.holdCount = 0
		}
	}
}

// Peak returns the current decaying peak, linear.
func (pm *PeakMeter) Peak() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.peak
}

// PeakDB returns the current decaying peak in dBFS.
func (pm *PeakMeter) PeakDB() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if pm.peak > 0 {
		return 20.0 * math.Log10(pm.peak)
	}
	return math.Inf(-1)
}

// Hold returns the held peak, linear.
func (pm *PeakMeter) Hold() float64 {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return pm.hold
}

// Reset clears peak and hold state.
func (pm *PeakMeter) Reset() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.peak, pm.hold, pm.holdCount = 0, 0, 0
}

// RMSMeter tracks a running RMS level over a fixed sample window,
// adapted from the teacher's RMSMeter.
type RMSMeter struct {
	mu         sync.Mutex
	windowSize int
	buffer     []float64
	writePos   int
	sum        float64
	count      int
}

// NewRMSMeter creates an RMS meter over windowSizeSamples.
func NewRMSMeter(windowSizeSamples int) *RMSMeter {
	return &RMSMeter{windowSize: windowSizeSamples, buffer: make([]float64, windowSizeSamples)}
}

// Process folds samples into the RMS window.
func (rm *RMSMeter) Process(samples []float32) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for _, s := range samples {
		old := rm.buffer[rm.writePos]
		rm.sum -= old * old
		v := float64(s)
		rm.buffer[rm.writePos] = v
		rm.sum += v * v
		rm.writePos = (rm.writePos + 1) % rm.windowSize
		if rm.count < rm.windowSize {
			rm.count++
		}
	}
}

// RMS returns the current RMS level, linear.
func (rm *RMSMeter) RMS() float64 {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.count == 0 {
		return 0
	}
	return math.Sqrt(rm.sum / float64(rm.count))
}

// RMSDB returns the current RMS level in dBFS.
func (rm *RMSMeter) RMSDB() float64 {
	rms := rm.RMS()
	if rms > 0 {
		return 20.0 * math.Log10(rms)
	}
	return math.Inf(-1)
}

// Reset clears the RMS window.
func (rm *RMSMeter) Reset() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for i := range rm.buffer {
		rm.buffer[i] = 0
	}
	rm.sum, rm.count, rm.writePos = 0, 0, 0
}
