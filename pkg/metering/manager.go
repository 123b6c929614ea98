package metering

import (
	"github.com/justyntemme/rtaudio/pkg/atomicx"
	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// Manager owns the full meter set the render callback updates once
// per block: peak/RMS per channel, stereo correlation, integrated
// loudness/true-peak, and CPU load. Enabling a meter is idempotent —
// Enable on an already-enabled meter is a no-op (spec §6).
type Manager struct {
	sampleRate float64

	peakEnabled        atomicx.Flag
	correlationEnabled atomicx.Flag
	loudnessEnabled    atomicx.Flag

	peakL, peakR *PeakMeter
	rmsL, rmsR   *RMSMeter
	correlation  *CorrelationMeter
	loudness     *LoudnessMeter
	cpu          *CPUMeter

	// loudnessIn is the [][]float32 passed to loudness.Process, reused
	// across calls instead of building a slice literal per block.
	loudnessIn [][]float32

	// guards Reset against concurrent audio-thread Update calls; Update
	// uses TryLock and silently skips this block's measurement rather
	// than contend, matching the render callback's never-block rule
	// (spec §5).
	updateLock atomicx.TryMutex
}

// NewManager creates a manager for a stereo engine at sampleRate.
func NewManager(sampleRate float64) *Manager {
	m := &Manager{
		sampleRate:  sampleRate,
		peakL:       NewPeakMeter(sampleRate),
		peakR:       NewPeakMeter(sampleRate),
		rmsL:        NewRMSMeter(int(0.3 * sampleRate)),
		rmsR:        NewRMSMeter(int(0.3 * sampleRate)),
		correlation: NewCorrelationMeter(int(0.05*sampleRate), sampleRate),
		loudness:    NewLoudnessMeter(sampleRate, 2),
		cpu:         NewCPUMeter(sampleRate),
		loudnessIn:  make([][]float32, 2),
	}
	m.peakEnabled.Store(true)
	m.correlationEnabled.Store(true)
	m.loudnessEnabled.Store(true)
	return m
}

// EnablePeak idempotently turns peak/RMS metering on.
func (m *Manager) EnablePeak() { m.peakEnabled.Store(true) }

// DisablePeak turns peak/RMS metering off.
func (m *Manager) DisablePeak() { m.peakEnabled.Store(false) }

// EnableCorrelation idempotently turns correlation metering on.
func (m *Manager) EnableCorrelation() { m.correlationEnabled.Store(true) }

// DisableCorrelation turns correlation metering off.
func (m *Manager) DisableCorrelation() { m.correlationEnabled.Store(false) }

// EnableLoudness idempotently turns loudness metering on.
func (m *Manager) EnableLoudness() { m.loudnessEnabled.Store(true) }

// DisableLoudness turns loudness metering off.
func (m *Manager) DisableLoudness() { m.loudnessEnabled.Store(false) }

// Update is called once per render block from the audio thread with
// the just-rendered stereo output. It never blocks: if a concurrent
// Reset holds the update lock, this block's measurement is silently
// skipped rather than contended for.
func (m *Manager) Update(left, right []float32) func() {
	stopCPU := m.cpu.Start(len(left))

	if !m.updateLock.TryLock() {
		return stopCPU
	}
	defer m.updateLock.Unlock()

	if m.peakEnabled.Load() {
		m.peakL.Process(left)
		m.peakR.Process(right)
		m.rmsL.Process(left)
		m.rmsR.Process(right)
	}
	if m.correlationEnabled.Load() {
		m.correlation.Process(left, right)
	}
	if m.loudnessEnabled.Load() {
		m.loudnessIn[0], m.loudnessIn[1] = left, right
		m.loudness.Process(m.loudnessIn)
	}

	return stopCPU
}

// PeakDB returns the current per-channel peak in dBFS, or
// rterr.KindLufsNotReady-style unreadiness never applies here — peak is
// always readable once enabled (zero samples yields -Inf dBFS).
func (m *Manager) PeakDB() (left, right float64, err error) {
	if !m.peakEnabled.Load() {
		return 0, 0, rterr.New(rterr.KindInvalidConfig, "metering.PeakDB", "peak metering is disabled")
	}
	return m.peakL.PeakDB(), m.peakR.PeakDB(), nil
}

// RMSDB returns the current per-channel RMS in dBFS.
func (m *Manager) RMSDB() (left, right float64, err error) {
	if !m.peakEnabled.Load() {
		return 0, 0, rterr.New(rterr.KindInvalidConfig, "metering.RMSDB", "peak/RMS metering is disabled")
	}
	return m.rmsL.RMSDB(), m.rmsR.RMSDB(), nil
}

// Correlation returns the current stereo correlation, -1..1.
func (m *Manager) Correlation() (float64, error) {
	if !m.correlationEnabled.Load() {
		return 0, rterr.New(rterr.KindInvalidConfig, "metering.Correlation", "correlation metering is disabled")
	}
	return m.correlation.Correlation(), nil
}

// IntegratedLUFS returns gated integrated loudness, or
// rterr.KindLufsNotReady if not enough samples have accumulated yet.
func (m *Manager) IntegratedLUFS() (float64, error) {
	if !m.loudnessEnabled.Load() {
		return 0, rterr.New(rterr.KindInvalidConfig, "metering.IntegratedLUFS", "loudness metering is disabled")
	}
	return m.loudness.IntegratedLUFS()
}

// TruePeakDBTP returns the tracked true-peak estimate in dBTP.
func (m *Manager) TruePeakDBTP() (float64, error) {
	if !m.loudnessEnabled.Load() {
		return 0, rterr.New(rterr.KindInvalidConfig, "metering.TruePeakDBTP", "loudness metering is disabled")
	}
	return m.loudness.TruePeakDBTP(), nil
}

// CPULoad returns the most recently measured block's CPU load as a
// fraction of its real-time budget.
func (m *Manager) CPULoad() float64 {
	return m.cpu.LastLoad()
}

// Reset clears every meter. Takes the update lock so it never races a
// concurrent audio-thread Update; unlike Update, Reset runs on the
// control thread so it may spin until the lock is free.
func (m *Manager) Reset() {
	for !m.updateLock.TryLock() {
	}
	defer m.updateLock.Unlock()
	m.peakL.Reset()
	m.peakR.Reset()
	m.rmsL.Reset()
	m.rmsR.Reset()
	m.correlation.Reset()
	m.loudness.Reset()
	m.cpu.Reset()
}
