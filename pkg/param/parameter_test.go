package param

import "testing"

func TestParameterNormalizeDenormalizeRoundTrip(t *testing.T) {
	p := New(1, "freq", 20, 20000, 440)
	if got := p.GetPlainValue(); got < 439.9 || got > 440.1 {
		t.Fatalf("expected initial plain value ~440, got %v", got)
	}

	p.SetPlainValue(1000)
	if got := p.GetPlainValue(); got < 999.9 || got > 1000.1 {
		t.Fatalf("expected plain value 1000 after SetPlainValue, got %v", got)
	}
}

func TestParameterSetValueClampsToUnitRange(t *testing.T) {
	p := New(1, "gain", 0, 1, 0.5)
	p.SetValue(2.0)
	if got := p.GetValue(); got != 1.0 {
		t.Errorf("expected clamp to 1.0, got %v", got)
	}
	p.SetValue(-1.0)
	if got := p.GetValue(); got != 0.0 {
		t.Errorf("expected clamp to 0.0, got %v", got)
	}
}

func TestParameterDegenerateRangeNormalizesToZero(t *testing.T) {
	p := New(1, "fixed", 5, 5, 5)
	if got := p.Normalize(5); got != 0 {
		t.Errorf("expected degenerate range to normalize to 0, got %v", got)
	}
}

func TestParameterFormatValueDefault(t *testing.T) {
	p := New(1, "mix", 0, 100, 50)
	s := p.FormatValue(p.GetValue())
	if s != "50.00" {
		t.Errorf("expected default formatting '50.00', got %q", s)
	}
}

func TestParameterCustomFormatterAndParser(t *testing.T) {
	p := New(1, "gain", -80, 12, 0)
	p.SetFormatter(
		func(v float64) string {
			if v <= -80 {
				return "-inf dB"
			}
			return "custom"
		},
		func(s string) (float64, error) { return -6, nil },
	)
	if got := p.FormatValue(p.Normalize(-80)); got != "-inf dB" {
		t.Errorf("expected custom formatter output, got %q", got)
	}
	norm, err := p.ParseValue("anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Denormalize(norm); got < -6.01 || got > -5.99 {
		t.Errorf("expected parsed plain value -6, got %v", got)
	}
}
