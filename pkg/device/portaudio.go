package device

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioDriver binds Driver to the host's default audio output device
// via PortAudio. It owns no DSP state: the callback PortAudio invokes
// does nothing but hand its own channel buffers to the configured
// RenderFunc.
type PortAudioDriver struct {
	mu         sync.Mutex
	sampleRate float64
	channels   int
	frames     int
	stream     *portaudio.Stream
	render     RenderFunc
}

// NewPortAudioDriver configures (but does not open) a PortAudio output
// stream with the given sample rate, channel count and block size.
func NewPortAudioDriver(sampleRate float64, channels, framesPerBuffer int) *PortAudioDriver {
	return &PortAudioDriver{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     framesPerBuffer,
	}
}

// Start initializes PortAudio, opens the default output stream and begins
// calling render once per block on PortAudio's callback thread.
func (d *PortAudioDriver) Start(render RenderFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream != nil {
		return fmt.Errorf("device: stream already started")
	}
	d.render = render

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("device: initialize: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, d.channels, d.sampleRate, d.frames, d.callback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("device: open default stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("device: start stream: %w", err)
	}
	d.stream = stream
	return nil
}

// callback is PortAudio's audio-thread entry point. out is one slice per
// output channel, non-interleaved; it is handed straight through to
// render with no copy.
func (d *PortAudioDriver) callback(out [][]float32) {
	frames := 0
	if len(out) > 0 {
		frames = len(out[0])
	}
	d.render(out, frames)
}

// Stop stops and closes the stream and terminates PortAudio. A no-op if
// the stream was never started.
func (d *PortAudioDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stream == nil {
		return nil
	}
	stopErr := d.stream.Stop()
	closeErr := d.stream.Close()
	portaudio.Terminate()
	d.stream = nil

	if stopErr != nil {
		return fmt.Errorf("device: stop stream: %w", stopErr)
	}
	if closeErr != nil {
		return fmt.Errorf("device: close stream: %w", closeErr)
	}
	return nil
}

func (d *PortAudioDriver) SampleRate() float64 { return d.sampleRate }
func (d *PortAudioDriver) BufferSize() int      { return d.frames }
