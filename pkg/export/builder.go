package export

import (
	"github.com/justyntemme/rtaudio/pkg/graph"
	"github.com/justyntemme/rtaudio/pkg/metering"
	"github.com/justyntemme/rtaudio/pkg/pdc"
	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// renderBlockSize is the block length the offline render loop processes
// per Backend.Process call. Export has no real-time deadline, so this
// is chosen purely to amortize the per-call overhead of walking the
// compiled node list, not for any latency reason.
const renderBlockSize = 512

// Builder is the fluent surface returned by Engine.Export() (spec §6):
// `engine.Export().DurationSeconds(10).Format(FormatWav).Normalize(...).ToFile(path)`.
type Builder struct {
	backend    *graph.BackendHandle
	pdcHandle  pdc.Handle
	sampleRate float64

	durationSeconds float64
	durationSet     bool

	format            AudioFormat
	bitDepth          BitDepth
	dither            DitherType
	normalization     NormalizationMode
	compensateLatency bool
	mono              bool

	context *Context
}

// NewBuilder creates an export builder against the currently compiled
// backend, sampling at sampleRate. pdcHandle supplies the master-channel
// latency query used by CompensateLatency.
func NewBuilder(backend *graph.BackendHandle, pdcHandle pdc.Handle, sampleRate float64) *Builder {
	return &Builder{
		backend:    backend,
		pdcHandle:  pdcHandle,
		sampleRate: sampleRate,
		format:     FormatWav,
		bitDepth:   BitDepthInt16,
		dither:     DitherTriangular,
	}
}

// DurationSeconds sets the rendered duration directly.
func (b *Builder) DurationSeconds(seconds float64) *Builder {
	b.durationSeconds = seconds
	b.durationSet = true
	return b
}

// DurationBeats sets the rendered duration as a beat count at tempoBPM.
func (b *Builder) DurationBeats(beats, tempoBPM float64) *Builder {
	b.durationSeconds = (beats / tempoBPM) * 60.0
	b.durationSet = true
	return b
}

// Format selects the output container.
func (b *Builder) Format(f AudioFormat) *Builder {
	b.format = f
	return b
}

// BitDepth selects the PCM sample width.
func (b *Builder) BitDepth(depth BitDepth) *Builder {
	b.bitDepth = depth
	return b
}

// Dither selects the noise shape applied before bit-depth reduction.
func (b *Builder) Dither(d DitherType) *Builder {
	b.dither = d
	return b
}

// Normalize sets the post-render normalization target.
func (b *Builder) Normalize(mode NormalizationMode) *Builder {
	b.normalization = mode
	return b
}

// CompensateLatency trims the graph's reported master latency from the
// front of the rendered buffer. Disable when exporting stems that need
// to stay time-aligned with other stems.
func (b *Builder) CompensateLatency(enabled bool) *Builder {
	b.compensateLatency = enabled
	return b
}

// Mono sums left/right down to a single channel before encoding.
func (b *Builder) Mono(enabled bool) *Builder {
	b.mono = enabled
	return b
}

// WithContext attaches an offline timeline and MIDI snapshot, so graph
// units that read transport position or MIDI events see the export
// timeline rather than the live engine's state.
func (b *Builder) WithContext(ctx *Context) *Builder {
	b.context = ctx
	return b
}

// Render runs the configured render and returns the (possibly
// normalized, not yet dithered or bit-reduced) stereo float buffers.
func (b *Builder) Render() (left, right []float32, sampleRate float64, err error) {
	left, right, err = b.renderInternal()
	if err != nil {
		return nil, nil, 0, err
	}
	b.applyNormalization(left, right)
	return left, right, b.sampleRate, nil
}

// ToFile runs the configured render, applies normalization and
// dithering, and encodes the result to path.
func (b *Builder) ToFile(path string) error {
	if b.format == FormatFlac {
		return ErrUnsupportedFormat
	}

	left, right, err := b.renderInternal()
	if err != nil {
		return err
	}

	b.applyNormalization(left, right)

	if b.dither != DitherNone && b.bitDepth != BitDepthFloat32 {
		state := newDitherState(b.dither)
		applyDither(left, right, b.bitDepth.Bits(), state)
	}

	return writeWavFile(path, left, right, int(b.sampleRate), b.bitDepth, b.mono)
}

func (b *Builder) applyNormalization(left, right []float32) {
	switch b.normalization.Kind {
	case NormalizePeak:
		ApplyPeakNormalization(left, right, b.normalization.PeakDB)
	case NormalizeLoudness:
		lm := metering.NewLoudnessMeter(b.sampleRate, 2)
		lm.Process([][]float32{left, right})
		currentLUFS, err := lm.IntegratedLUFS()
		if err != nil {
			// Too short to gate a single 400ms block: normalization is a
			// no-op rather than an error, matching a silent render for
			// sub-block-length exports.
			return
		}
		ApplyLoudnessNormalization(left, right, currentLUFS, b.normalization.TargetLUFS, b.normalization.TruePeakDBTP)
	}
}

func (b *Builder) renderInternal() (left, right []float32, err error) {
	if !b.durationSet {
		return nil, nil, rterr.New(rterr.KindInvalidConfig, "export.Builder.Render",
			"duration not set, use DurationSeconds or DurationBeats")
	}

	latencySamples := 0
	if b.compensateLatency {
		l0 := b.pdcHandle.MaxLatency(0)
		l1 := b.pdcHandle.MaxLatency(1)
		latencySamples = l0
		if l1 > latencySamples {
			latencySamples = l1
		}
	}

	outputLength := int(b.durationSeconds * b.sampleRate)
	extraSamples := latencySamples
	totalSamples := outputLength + extraSamples

	left = make([]float32, 0, outputLength)
	right = make([]float32, 0, outputLength)

	backend := b.backend.Load()
	produced := 0
	for produced < totalSamples {
		frames := renderBlockSize
		if remaining := totalSamples - produced; remaining < frames {
			frames = remaining
		}

		if b.context != nil {
			b.context.Timeline.Advance(frames)
		}
		backend.Process(frames)

		blockLeft := backend.MasterChannel(0)[:frames]
		var blockRight []float32
		if backend.NumOutputs() > 1 {
			blockRight = backend.MasterChannel(1)[:frames]
		} else {
			blockRight = blockLeft
		}

		for i := 0; i < frames; i++ {
			sampleIdx := produced + i
			if sampleIdx < latencySamples {
				continue
			}
			if len(left) >= outputLength {
				break
			}
			left = append(left, blockLeft[i])
			right = append(right, blockRight[i])
		}
		produced += frames
	}

	return left, right, nil
}
