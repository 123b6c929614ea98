package device

import "testing"

func TestPortAudioDriverCallbackInvokesRender(t *testing.T) {
	d := NewPortAudioDriver(48000, 2, 256)

	var gotFrames, gotChannels int
	d.render = func(output [][]float32, frames int) {
		gotFrames = frames
		gotChannels = len(output)
		for ch := range output {
			for i := range output[ch] {
				output[ch][i] = 1
			}
		}
	}

	buf := [][]float32{make([]float32, 128), make([]float32, 128)}
	d.callback(buf)

	if gotFrames != 128 {
		t.Errorf("expected 128 frames, got %d", gotFrames)
	}
	if gotChannels != 2 {
		t.Errorf("expected 2 channels, got %d", gotChannels)
	}
	if buf[0][0] != 1 || buf[1][127] != 1 {
		t.Errorf("expected render to write through caller's buffers in place")
	}
}

func TestPortAudioDriverCallbackHandlesEmptyOutput(t *testing.T) {
	d := NewPortAudioDriver(48000, 0, 256)
	called := false
	d.render = func(output [][]float32, frames int) {
		called = true
		if frames != 0 {
			t.Errorf("expected 0 frames for empty output, got %d", frames)
		}
	}
	d.callback(nil)
	if !called {
		t.Errorf("expected render to be called even with no channels")
	}
}

func TestPortAudioDriverSampleRateAndBufferSize(t *testing.T) {
	d := NewPortAudioDriver(44100, 2, 512)
	if d.SampleRate() != 44100 {
		t.Errorf("expected sample rate 44100, got %v", d.SampleRate())
	}
	if d.BufferSize() != 512 {
		t.Errorf("expected buffer size 512, got %v", d.BufferSize())
	}
}

func TestPortAudioDriverStopWithoutStartIsNoop(t *testing.T) {
	d := NewPortAudioDriver(48000, 2, 256)
	if err := d.Stop(); err != nil {
		t.Errorf("expected nil error stopping unstarted driver, got %v", err)
	}
}
