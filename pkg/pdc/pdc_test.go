package pdc

import "testing"

func TestMonoDelayZeroIsPassthrough(t *testing.T) {
	d := NewMonoDelay(0)
	out := make([]float32, 1)
	d.Tick([]float32{1.0}, out)
	if out[0] != 1.0 {
		t.Errorf("expected passthrough at zero delay, got %f", out[0])
	}
}

func TestMonoDelayShiftsSamples(t *testing.T) {
	d := NewMonoDelay(2)
	out := make([]float32, 1)

	d.Tick([]float32{1}, out)
	if out[0] != 0 {
		t.Errorf("expected silence at sample 0, got %f", out[0])
	}
	d.Tick([]float32{2}, out)
	if out[0] != 0 {
		t.Errorf("expected silence at sample 1, got %f", out[0])
	}
	d.Tick([]float32{3}, out)
	if out[0] != 1 {
		t.Errorf("expected delayed sample 1 at sample 2, got %f", out[0])
	}
	d.Tick([]float32{4}, out)
	if out[0] != 2 {
		t.Errorf("expected delayed sample 2 at sample 3, got %f", out[0])
	}
}

func TestMonoDelayResetClearsBuffer(t *testing.T) {
	d := NewMonoDelay(2)
	out := make([]float32, 1)
	d.Tick([]float32{1}, out)
	d.Tick([]float32{2}, out)
	d.Reset()
	d.Tick([]float32{5}, out)
	if out[0] != 0 {
		t.Errorf("expected silence right after reset, got %f", out[0])
	}
}

func TestStereoDelayProcessesBothChannels(t *testing.T) {
	d := NewStereoDelay(1)
	out := make([][]float32, 2)
	out[0] = make([]float32, 2)
	out[1] = make([]float32, 2)
	in := [][]float32{{1, 2}, {10, 20}}
	d.Process(2, in, out)
	if out[0][0] != 0 || out[1][0] != 0 {
		t.Fatalf("expected first frame silent, got %v", out)
	}
	if out[0][1] != 1 || out[1][1] != 10 {
		t.Fatalf("expected second frame delayed by one, got %v", out)
	}
}
