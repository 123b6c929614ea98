package export

import (
	"path/filepath"
	"testing"

	"github.com/justyntemme/rtaudio/pkg/graph"
	"github.com/justyntemme/rtaudio/pkg/pdc"
)

// constUnit emits a fixed amplitude on both of its two output ports,
// with no inputs — a minimal AudioUnit standing in for an oscillator
// during an export render.
type constUnit struct {
	amplitude float32
}

func (c *constUnit) Inputs() int  { return 0 }
func (c *constUnit) Outputs() int { return 2 }
func (c *constUnit) TypeID() uint64 { return 1 }
func (c *constUnit) Tick(input, output []float32) {
	output[0] = c.amplitude
	output[1] = c.amplitude
}
func (c *constUnit) Process(frames int, input, output [][]float32) {
	for i := 0; i < frames; i++ {
		output[0][i] = c.amplitude
		output[1][i] = c.amplitude
	}
}
func (c *constUnit) Reset()                        {}
func (c *constUnit) SetSampleRate(sampleRate float64) {}
func (c *constUnit) Route(inputLatencies []int) []int { return []int{0, 0} }
func (c *constUnit) Footprint() int                   { return 0 }

func newTestBackend(t *testing.T, amplitude float32) *graph.BackendHandle {
	t.Helper()
	g := graph.New(0, 2)
	id := g.Add(&constUnit{amplitude: amplitude})
	if err := g.PipeOutput(id); err != nil {
		t.Fatalf("PipeOutput failed: %v", err)
	}
	backend, err := graph.Compile(g, renderBlockSize)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return graph.NewBackendHandle(backend)
}

func TestBuilderRenderProducesRequestedDuration(t *testing.T) {
	backend := newTestBackend(t, 0.5)
	b := NewBuilder(backend, pdc.NewHandle(pdc.NewManager()), 48000)
	b.DurationSeconds(0.01)

	left, right, sampleRate, err := b.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sampleRate != 48000 {
		t.Errorf("expected sample rate 48000, got %v", sampleRate)
	}
	wantFrames := int(0.01 * 48000)
	if len(left) != wantFrames || len(right) != wantFrames {
		t.Fatalf("expected %d frames, got left=%d right=%d", wantFrames, len(left), len(right))
	}
	for _, v := range left {
		if v != 0.5 {
			t.Fatalf("expected constant 0.5 amplitude, got %v", v)
		}
	}
}

func TestBuilderRenderRequiresDuration(t *testing.T) {
	backend := newTestBackend(t, 0.1)
	b := NewBuilder(backend, pdc.NewHandle(pdc.NewManager()), 48000)
	if _, _, _, err := b.Render(); err == nil {
		t.Fatal("expected error when duration is not set")
	}
}

func TestBuilderToFileWritesWav(t *testing.T) {
	backend := newTestBackend(t, 0.3)
	b := NewBuilder(backend, pdc.NewHandle(pdc.NewManager()), 44100)
	b.DurationSeconds(0.01).BitDepth(BitDepthInt16).Dither(DitherNone)

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := b.ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuilderToFileRejectsFlac(t *testing.T) {
	backend := newTestBackend(t, 0.3)
	b := NewBuilder(backend, pdc.NewHandle(pdc.NewManager()), 44100)
	b.DurationSeconds(0.01).Format(FormatFlac)

	path := filepath.Join(t.TempDir(), "out.flac")
	if err := b.ToFile(path); err != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestBuilderCompensateLatencyTrimsLeadingSamples(t *testing.T) {
	g := graph.New(0, 2)
	id := g.Add(&constUnit{amplitude: 0.7})
	if err := g.PipeOutput(id); err != nil {
		t.Fatalf("PipeOutput failed: %v", err)
	}

	pdcManager := pdc.NewManager()
	pdcManager.SetChannelLatency(0, 100)
	pdcManager.SetChannelLatency(1, 100)
	if err := pdcManager.Analyze(g); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	backendObj, err := graph.Compile(g, renderBlockSize)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	backend := graph.NewBackendHandle(backendObj)

	b := NewBuilder(backend, pdc.NewHandle(pdcManager), 48000)
	b.DurationSeconds(0.01).CompensateLatency(true)

	left, _, _, err := b.Render()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFrames := int(0.01 * 48000)
	if len(left) != wantFrames {
		t.Fatalf("expected output still trimmed to requested duration %d, got %d", wantFrames, len(left))
	}
	// With 100 samples of asserted latency and a constant-amplitude
	// source, trimming the lead-in is unobservable in the output
	// values themselves (the source never changes), but the frame
	// count contract must still hold even when latencySamples > 0.
}
