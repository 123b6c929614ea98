package transport

import "testing"

func TestClockAdvancesWhenUnpaused(t *testing.T) {
	c := NewClock(48000, 120)
	c.SetPaused(false)
	in := []float32{}
	out := make([]float32, 1)
	for i := 0; i < 48000; i++ {
		c.Tick(in, out)
	}
	// 120 BPM: 2 beats/sec, so 1 second should advance ~2 beats.
	if got := c.CurrentBeat(); got < 1.9 || got > 2.1 {
		t.Errorf("expected ~2 beats after 1 second at 120bpm, got %f", got)
	}
}

func TestClockHoldsWhenPaused(t *testing.T) {
	c := NewClock(48000, 120)
	c.SetCurrentBeat(5)
	in := []float32{}
	out := make([]float32, 1)
	c.Tick(in, out)
	if c.CurrentBeat() != 5 {
		t.Errorf("expected paused clock to hold beat, got %f", c.CurrentBeat())
	}
}

func TestClockReverse(t *testing.T) {
	c := NewClock(48000, 120)
	c.SetCurrentBeat(10)
	c.SetPaused(false)
	c.SetReverse(true)
	out := make([]float32, 1)
	c.Tick(nil, out)
	if c.CurrentBeat() >= 10 {
		t.Errorf("expected reverse clock to move backward, got %f", c.CurrentBeat())
	}
}

func TestLoopRangeWrap(t *testing.T) {
	r := LoopRange{Start: 4, End: 8}
	if got := r.Wrap(8); got != 4 {
		t.Errorf("expected wrap at end to land on start, got %f", got)
	}
	if got := r.Wrap(10); got != 6 {
		t.Errorf("expected 10 to wrap to 6, got %f", got)
	}
	if got := r.Wrap(2); got != 6 {
		t.Errorf("expected beat before start to wrap symmetrically to 6, got %f", got)
	}
}
