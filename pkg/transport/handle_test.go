package transport

import "testing"

func TestHandleFluentChain(t *testing.T) {
	m := NewManager(NewClock(48000, 120))
	met := NewMetronome()
	h := NewHandle(m, met)

	h.Tempo(140).Play().LoopRange(0, 4).EnableLoop()

	if h.GetTempo() != 140 {
		t.Errorf("expected tempo 140, got %f", h.GetTempo())
	}
	if !h.IsPlaying() {
		t.Error("expected transport to be playing")
	}
	loop, enabled := h.GetLoopRange()
	if !enabled || loop.Start != 0 || loop.End != 4 {
		t.Errorf("expected loop [0,4) enabled, got %+v enabled=%v", loop, enabled)
	}

	h.Metronome().Volume(0.5).AccentEvery(3).Always()
	if met.Volume() != 0.5 || met.AccentEvery() != 3 || met.Mode() != MetronomeAlways {
		t.Errorf("expected metronome configured via fluent handle, got volume=%f accent=%d mode=%v",
			met.Volume(), met.AccentEvery(), met.Mode())
	}
}
