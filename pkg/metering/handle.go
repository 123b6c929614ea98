package metering

// Handle is the control-thread surface `Engine.Metering()` returns.
type Handle struct {
	manager *Manager
}

// NewHandle wraps manager in a fluent control surface.
func NewHandle(manager *Manager) *Handle {
	return &Handle{manager: manager}
}

// EnablePeak turns peak/RMS metering on, fluently.
func (h *Handle) EnablePeak() *Handle {
	h.manager.EnablePeak()
	return h
}

// DisablePeak turns peak/RMS metering off, fluently.
func (h *Handle) DisablePeak() *Handle {
	h.manager.DisablePeak()
	return h
}

// EnableCorrelation turns correlation metering on, fluently.
func (h *Handle) EnableCorrelation() *Handle {
	h.manager.EnableCorrelation()
	return h
}

// DisableCorrelation turns correlation metering off, fluently.
func (h *Handle) DisableCorrelation() *Handle {
	h.manager.DisableCorrelation()
	return h
}

// EnableLoudness turns loudness metering on, fluently.
func (h *Handle) EnableLoudness() *Handle {
	h.manager.EnableLoudness()
	return h
}

// DisableLoudness turns loudness metering off, fluently.
func (h *Handle) DisableLoudness() *Handle {
	h.manager.DisableLoudness()
	return h
}

// PeakDB returns the current per-channel peak in dBFS.
func (h *Handle) PeakDB() (left, right float64, err error) {
	return h.manager.PeakDB()
}

// RMSDB returns the current per-channel RMS in dBFS.
func (h *Handle) RMSDB() (left, right float64, err error) {
	return h.manager.RMSDB()
}

// Correlation returns the current stereo correlation, -1..1.
func (h *Handle) Correlation() (float64, error) {
	return h.manager.Correlation()
}

// IntegratedLUFS returns gated integrated loudness, or a not-ready
// error if not enough samples have accumulated.
func (h *Handle) IntegratedLUFS() (float64, error) {
	return h.manager.IntegratedLUFS()
}

// TruePeakDBTP returns the tracked true-peak estimate in dBTP.
func (h *Handle) TruePeakDBTP() (float64, error) {
	return h.manager.TruePeakDBTP()
}

// CPULoad returns the most recently measured block's CPU load as a
// fraction of its real-time budget.
func (h *Handle) CPULoad() float64 {
	return h.manager.CPULoad()
}

// Reset clears every meter.
func (h *Handle) Reset() *Handle {
	h.manager.Reset()
	return h
}
