package metering

import (
	"sync"
	"sync/atomic"
	"time"
)

// CPUMeter tracks render-callback wall-clock time against the audio
// block's real-time budget, adapted from
// vst3go/pkg/framework/debug/profiler.go's Profiler (narrowed from a
// general named-section profiler to the one section the render
// callback needs: block-processing time vs. block-duration budget).
type CPUMeter struct {
	mu         sync.Mutex
	enabled    atomic.Bool
	sampleRate float64

	lastBlockFrames int
	totalTime       time.Duration
	count           uint64
	maxTime         time.Duration
	lastLoad        float64
}

// NewCPUMeter creates a CPU meter for a render callback running at
// sampleRate.
func NewCPUMeter(sampleRate float64) *CPUMeter {
	m := &CPUMeter{sampleRate: sampleRate}
	m.enabled.Store(true)
	return m
}

// SetEnabled toggles measurement; disabled, Start returns a no-op stop
// function so the render callback pays no overhead.
func (m *CPUMeter) SetEnabled(enabled bool) { m.enabled.Store(enabled) }

// Start begins timing one block of frames, returning a function the
// caller invokes when the block's processing completes.
func (m *CPUMeter) Start(frames int) func() {
	if !m.enabled.Load() {
		return func() {}
	}
	begin := time.Now()
	return func() {
		m.record(frames, time.Since(begin))
	}
}

func (m *CPUMeter) record(frames int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastBlockFrames = frames
	m.totalTime += elapsed
	m.count++
	if elapsed > m.maxTime {
		m.maxTime = elapsed
	}

	budget := time.Duration(float64(frames) / m.sampleRate * float64(time.Second))
	if budget > 0 {
		m.lastLoad = float64(elapsed) / float64(budget)
	}
}

// LastLoad returns the most recently measured block's CPU load as a
// fraction of its real-time budget (1.0 == exactly real-time).
func (m *CPUMeter) LastLoad() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastLoad
}

// AverageBlockTime returns the mean measured block processing time.
func (m *CPUMeter) AverageBlockTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.count == 0 {
		return 0
	}
	return m.totalTime / time.Duration(m.count)
}

// MaxBlockTime returns the worst measured block processing time.
func (m *CPUMeter) MaxBlockTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxTime
}

// Reset clears all accumulated timing.
func (m *CPUMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalTime, m.count, m.maxTime, m.lastLoad, m.lastBlockFrames = 0, 0, 0, 0, 0
}
