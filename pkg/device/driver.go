// Package device is the thin seam between the engine's render callback and
// a physical audio backend. It carries no DSP or scheduling logic: a
// Driver's only job is to open a stream and call the supplied RenderFunc
// once per block, on whatever thread the backend gives it.
package device

// RenderFunc produces one block of audio. output holds one []float32 per
// channel, each at least frames long; RenderFunc fills the first frames
// samples of each channel in place. Called on the driver's own audio
// thread — it must not allocate or block.
type RenderFunc func(output [][]float32, frames int)

// Driver owns a physical audio stream and feeds it from a RenderFunc.
// Engine.Build starts a Driver; Engine.Close stops it.
type Driver interface {
	// Start opens the stream and begins delivering blocks to render.
	// Returns once the stream is running; render continues to be called
	// from the driver's audio thread until Stop.
	Start(render RenderFunc) error

	// Stop closes the stream. Safe to call on a driver that was never
	// started.
	Stop() error

	SampleRate() float64
	BufferSize() int
}
