package param

import "testing"

func TestSmootherLinearReachesTargetAfterRateSamples(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 10)
	s.Reset(0)
	s.SetTarget(10)

	for i := 0; i < 10; i++ {
		s.Next()
	}
	if got := s.Next(); got != 10 {
		t.Fatalf("expected linear ramp to reach target 10, got %v", got)
	}
	if s.IsSmoothing() {
		t.Errorf("expected smoothing to have completed")
	}
}

func TestSmootherExponentialConverges(t *testing.T) {
	s := NewSmoother(ExponentialSmoothing, 0.9)
	s.Reset(0)
	s.SetTarget(1)

	var last float64
	for i := 0; i < 500; i++ {
		last = s.Next()
	}
	if last < 0.999 {
		t.Fatalf("expected exponential smoother to converge near 1, got %v", last)
	}
}

func TestSmootherLogarithmicReachesTarget(t *testing.T) {
	s := NewSmoother(LogarithmicSmoothing, 10)
	s.Reset(100)
	s.SetTarget(1000)

	var last float64
	for i := 0; i < 20; i++ {
		last = s.Next()
	}
	if last != 1000 {
		t.Fatalf("expected logarithmic ramp to settle at target 1000, got %v", last)
	}
}

func TestSmootherIgnoresTargetWithinThreshold(t *testing.T) {
	s := NewSmoother(LinearSmoothing, 10)
	s.Reset(5)
	s.SetTarget(5.00001)
	if s.IsSmoothing() {
		t.Errorf("expected sub-threshold retarget to be ignored")
	}
}

func TestSmoothedParameterTracksParameterTarget(t *testing.T) {
	p := New(1, "freq", 20, 20000, 100)
	sp := NewSmoothedParameter(p, LinearSmoothing, 4)

	sp.SetValue(p.Normalize(500))
	for i := 0; i < 4; i++ {
		sp.Next()
	}
	if got := sp.Next(); got < 499.9 || got > 500.1 {
		t.Fatalf("expected smoothed parameter to reach 500, got %v", got)
	}
}

func TestSmoothedParameterDisableSnapsImmediately(t *testing.T) {
	p := New(1, "freq", 20, 20000, 100)
	sp := NewSmoothedParameter(p, LinearSmoothing, 100)
	sp.SetValue(p.Normalize(5000))
	sp.SetSmoothing(false)
	if got := sp.Next(); got < 4999.9 || got > 5000.1 {
		t.Fatalf("expected disabling smoothing to snap to plain value immediately, got %v", got)
	}
}
