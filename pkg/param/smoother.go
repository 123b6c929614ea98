package param

import "math"

// SmoothingType selects the interpolation curve a Smoother follows
// between its current value and a new target.
type SmoothingType int

const (
	// LinearSmoothing steps toward the target in equal increments.
	LinearSmoothing SmoothingType = iota
	// ExponentialSmoothing is a one-pole filter toward the target.
	ExponentialSmoothing
	// LogarithmicSmoothing interpolates in log space, for frequency-like
	// parameters where a linear ramp sounds uneven.
	LogarithmicSmoothing
)

// Smoother ramps a single value toward a target over a configured
// rate, avoiding the zipper noise of a parameter value changing in one
// sample. It runs entirely on the audio thread against plain float64
// fields — SetTarget is called by SmoothedParameter.SetValue on the control
// thread's last write before the next block, Next is called once per
// sample from the render callback, and nothing here allocates or
// blocks.
type Smoother struct {
	kind      SmoothingType
	current   float64
	target    float64
	rate      float64
	threshold float64
	smoothing bool

	step float64

	logCurrent float64
	logTarget  float64
	logStep    float64
}

// NewSmoother creates a smoother of the given kind. rate is a sample
// count for LinearSmoothing/LogarithmicSmoothing, or a 0-1 pole
// coefficient for ExponentialSmoothing.
func NewSmoother(kind SmoothingType, rate float64) *Smoother {
	return &Smoother{kind: kind, rate: rate, threshold: 0.0001}
}

// SetTarget retargets the smoother. A target within threshold of the
// current target is ignored — this is what lets rapid automation
// writes collapse into the smoother's existing ramp instead of
// restarting it every sample.
func (s *Smoother) SetTarget(target float64) {
	if math.Abs(target-s.target) < s.threshold {
		return
	}
	s.target = target
	s.smoothing = true

	switch s.kind {
	case LinearSmoothing:
		if s.rate > 0 {
			s.step = (target - s.current) / s.rate
		}
	case LogarithmicSmoothing:
		const minVal = 0.001
		cur, tgt := s.current, target
		if cur < minVal {
			cur = minVal
		}
		if tgt < minVal {
			tgt = minVal
		}
		s.logCurrent = math.Log(cur)
		s.logTarget = math.Log(tgt)
		if s.rate > 0 {
			s.logStep = (s.logTarget - s.logCurrent) / s.rate
		}
	}
}

// Next advances the ramp by one sample and returns the new current
// value.
func (s *Smoother) Next() float64 {
	if !s.smoothing {
		return s.current
	}

	switch s.kind {
	case ExponentialSmoothing:
		s.current += (s.target - s.current) * (1.0 - s.rate)
		if math.Abs(s.current-s.target) < s.threshold {
			s.current = s.target
			s.smoothing = false
		}
	case LinearSmoothing:
		s.current += s.step
		if (s.step > 0 && s.current >= s.target) || (s.step < 0 && s.current <= s.target) {
			s.current = s.target
			s.smoothing = false
		}
	case LogarithmicSmoothing:
		s.logCurrent += s.logStep
		if (s.logStep > 0 && s.logCurrent >= s.logTarget) || (s.logStep < 0 && s.logCurrent <= s.logTarget) {
			s.current = s.target
			s.smoothing = false
		} else {
			s.current = math.Exp(s.logCurrent)
		}
	}
	return s.current
}

// IsSmoothing reports whether the ramp has not yet reached its target.
func (s *Smoother) IsSmoothing() bool { return s.smoothing }

// Reset snaps the smoother to value with no pending ramp.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.smoothing = false
}

// SetRate updates the smoothing rate.
func (s *Smoother) SetRate(rate float64) { s.rate = rate }

// SetThreshold updates the completion threshold.
func (s *Smoother) SetThreshold(threshold float64) { s.threshold = threshold }

// SmoothedParameter pairs a Parameter with a Smoother so the audio
// thread reads a zipper-free ramp while the control thread writes
// discrete target values.
type SmoothedParameter struct {
	*Parameter
	smoother *Smoother
	enabled  bool
}

// NewSmoothedParameter wraps param with smoothing of the given kind
// and rate, seeding the smoother at the parameter's current value.
func NewSmoothedParameter(p *Parameter, kind SmoothingType, rate float64) *SmoothedParameter {
	sp := &SmoothedParameter{Parameter: p, smoother: NewSmoother(kind, rate), enabled: true}
	sp.smoother.Reset(p.GetPlainValue())
	return sp
}

// SetValue sets the underlying parameter and retargets the smoother.
func (sp *SmoothedParameter) SetValue(value float64) {
	sp.Parameter.SetValue(value)
	if sp.enabled {
		sp.smoother.SetTarget(sp.GetPlainValue())
	}
}

// Next advances and returns the smoothed plain value.
func (sp *SmoothedParameter) Next() float64 {
	if sp.enabled {
		return sp.smoother.Next()
	}
	return sp.GetPlainValue()
}

// SetSmoothing enables or disables smoothing; disabling snaps the
// smoother to the parameter's current plain value.
func (sp *SmoothedParameter) SetSmoothing(enabled bool) {
	sp.enabled = enabled
	if !enabled {
		sp.smoother.Reset(sp.GetPlainValue())
	}
}

// UpdateSampleRate recomputes the smoothing rate for a target ramp
// time given a new sample rate.
func (sp *SmoothedParameter) UpdateSampleRate(sampleRate, targetTimeMs float64) {
	switch sp.smoother.kind {
	case LinearSmoothing:
		sp.smoother.SetRate(sampleRate * targetTimeMs / 1000.0)
	case ExponentialSmoothing:
		sp.smoother.SetRate(math.Exp(-6.908 / (sampleRate * targetTimeMs / 1000.0)))
	}
}
