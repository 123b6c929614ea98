package device

import "testing"

// fakeDriver is a Driver that delivers a fixed number of blocks
// synchronously from Start, standing in for PortAudio's own audio
// thread in tests.
type fakeDriver struct {
	sampleRate float64
	frames     int
	blocks     int
	started    bool
	stopped    bool
}

func (f *fakeDriver) Start(render RenderFunc) error {
	f.started = true
	out := [][]float32{make([]float32, f.frames), make([]float32, f.frames)}
	for i := 0; i < f.blocks; i++ {
		render(out, f.frames)
	}
	return nil
}

func (f *fakeDriver) Stop() error {
	f.stopped = true
	return nil
}

func (f *fakeDriver) SampleRate() float64 { return f.sampleRate }
func (f *fakeDriver) BufferSize() int     { return f.frames }

var _ Driver = (*fakeDriver)(nil)

func TestDriverContractDeliversConfiguredBlocks(t *testing.T) {
	d := &fakeDriver{sampleRate: 48000, frames: 64, blocks: 3}

	calls := 0
	err := d.Start(func(output [][]float32, frames int) {
		calls++
		if frames != 64 {
			t.Errorf("expected 64 frames, got %d", frames)
		}
		if len(output) != 2 {
			t.Errorf("expected 2 channels, got %d", len(output))
		}
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected render called 3 times, got %d", calls)
	}
	if err := d.Stop(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.stopped {
		t.Errorf("expected Stop to mark driver stopped")
	}
}
