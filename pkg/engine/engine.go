// Package engine is the facade spec.md §6 names: Engine.Build starts
// the audio device, Engine.GraphMut edits the live graph under a
// critical section, and Engine.Transport/Metering/PDC/MIDI/Export hand
// out the fluent handles each collaborator package defines.
package engine

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/justyntemme/rtaudio/pkg/device"
	"github.com/justyntemme/rtaudio/pkg/export"
	"github.com/justyntemme/rtaudio/pkg/graph"
	"github.com/justyntemme/rtaudio/pkg/metering"
	"github.com/justyntemme/rtaudio/pkg/midi"
	"github.com/justyntemme/rtaudio/pkg/pdc"
	"github.com/justyntemme/rtaudio/pkg/transport"
)

// noopInputSource is the default live MIDI collaborator when the
// caller wires no platform source (spec.md scopes platform MIDI input
// out as an external collaborator): it simply never has events.
type noopInputSource struct{}

func (noopInputSource) CycleRead(frames int, bufferStart int64, sampleRate float64) []midi.PortEvent {
	return nil
}

// Builder configures optional subsystems and device selection before
// Build starts the audio device (spec §6).
type Builder struct {
	cfg    Config
	driver device.Driver
	source midi.InputSource
	logger *log.Logger
}

// NewBuilder starts from DefaultConfig with a stderr logger and no
// device or MIDI source override.
func NewBuilder() *Builder {
	return &Builder{
		cfg:    DefaultConfig(),
		logger: log.New(os.Stderr),
	}
}

// FromConfig replaces the builder's configuration wholesale, e.g. one
// loaded via LoadConfig.
func (b *Builder) FromConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

func (b *Builder) OutputChannels(n int) *Builder { b.cfg.OutputChannels = n; return b }
func (b *Builder) InputChannels(n int) *Builder { b.cfg.InputChannels = n; return b }
func (b *Builder) SampleRate(hz float64) *Builder { b.cfg.SampleRate = hz; return b }
func (b *Builder) BlockSize(frames int) *Builder { b.cfg.BlockSize = frames; return b }
func (b *Builder) TempoBPM(bpm float32) *Builder { b.cfg.TempoBPM = bpm; return b }
func (b *Builder) EnableMIDI(enabled bool) *Builder {
	b.cfg.MIDIEnabled = enabled
	return b
}

// Device overrides the platform audio binding; defaults to a
// PortAudioDriver sized from the builder's config.
func (b *Builder) Device(d device.Driver) *Builder { b.driver = d; return b }

// MIDISource supplies the live platform MIDI collaborator (spec §4.6's
// "external input source, platform-specific"); defaults to one that
// never produces events.
func (b *Builder) MIDISource(s midi.InputSource) *Builder { b.source = s; return b }

// Logger overrides the structured logger used for control-thread
// status (engine build/close, graph commit and PDC analysis errors).
func (b *Builder) Logger(l *log.Logger) *Builder { b.logger = l; return b }

// Build compiles an empty graph, wires every collaborator, starts the
// audio device and returns the running Engine. Motion does not begin
// automatically — callers play the transport explicitly (spec §6).
func (b *Builder) Build() (*Engine, error) {
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	g := graph.New(b.cfg.InputChannels, b.cfg.OutputChannels)
	backend, err := graph.Compile(g, b.cfg.BlockSize)
	if err != nil {
		return nil, Wrap(KindGraphError, "engine.Build", err)
	}
	backendHandle := graph.NewBackendHandle(backend)

	clock := transport.NewClock(b.cfg.SampleRate, b.cfg.TempoBPM)
	metronome := transport.NewMetronome()
	transportManager := transport.NewManager(clock)
	transportHandle := transport.NewHandle(transportManager, metronome)

	pdcManager := pdc.NewManager()
	pdcHandle := pdc.NewHandle(pdcManager)

	meteringManager := metering.NewManager(b.cfg.SampleRate)
	meteringHandle := metering.NewHandle(meteringManager)

	registry := midi.NewRegistry()
	routes := midi.NewRoutingTable()
	snapshot := midi.NewSnapshot()
	midiHandle := midi.NewHandle(registry, routes, snapshot)

	source := b.source
	if source == nil {
		source = noopInputSource{}
	}
	cycleReader := midi.NewCycleReader(source, routes, registry)

	driver := b.driver
	if driver == nil {
		driver = device.NewPortAudioDriver(b.cfg.SampleRate, b.cfg.OutputChannels, b.cfg.BlockSize)
	}

	e := &Engine{
		id:               uuid.New(),
		cfg:              b.cfg,
		log:              b.logger,
		graph:            g,
		backend:          backendHandle,
		transportManager: transportManager,
		transportHandle:  transportHandle,
		pdcManager:       pdcManager,
		pdcHandle:        pdcHandle,
		meteringManager:  meteringManager,
		meteringHandle:   meteringHandle,
		midiEnabled:      b.cfg.MIDIEnabled,
		midiRegistry:     registry,
		midiRoutes:       routes,
		midiSnapshot:     snapshot,
		midiHandle:       midiHandle,
		cycleReader:      cycleReader,
		driver:           driver,
		gainScratch:      make([]float32, b.cfg.BlockSize),
	}

	if err := driver.Start(e.Render); err != nil {
		return nil, Wrap(KindInvalidDevice, "engine.Build", err)
	}

	b.logger.Info("engine built",
		"id", e.id.String(),
		"sample_rate", b.cfg.SampleRate,
		"block_size", b.cfg.BlockSize,
		"output_channels", b.cfg.OutputChannels,
		"input_channels", b.cfg.InputChannels,
	)

	return e, nil
}

// Engine is the running facade: a compiled graph backend behind an
// atomic handle, plus the transport, PDC, metering and MIDI
// collaborators that share it.
type Engine struct {
	id  uuid.UUID
	cfg Config
	log *log.Logger

	mu    sync.Mutex // serializes GraphMut critical sections
	graph *graph.Graph

	backend *graph.BackendHandle

	transportManager *transport.Manager
	transportHandle  transport.Handle

	pdcManager *pdc.Manager
	pdcHandle  pdc.Handle

	meteringManager *metering.Manager
	meteringHandle  *metering.Handle

	midiEnabled  bool
	midiRegistry *midi.Registry
	midiRoutes   *midi.RoutingTable
	midiSnapshot *midi.Snapshot
	midiHandle   *midi.Handle
	cycleReader  *midi.CycleReader
	bufferStart  int64

	driver      device.Driver
	gainScratch []float32
}

// ID returns the engine instance's UUID, used for log correlation.
func (e *Engine) ID() uuid.UUID { return e.id }

// GraphMut enters a critical section on the control thread with a
// mutable view of the front-end, recompiles the backend from the
// resulting graph, and swaps it into the render path atomically.
// Returns after the commit (spec §6).
func (e *Engine) GraphMut(fn func(g *graph.Graph)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn(e.graph)

	if _, err := e.backend.Commit(e.graph, e.cfg.BlockSize); err != nil {
		e.log.Error("graph commit failed", "id", e.id.String(), "err", err)
		return Wrap(KindGraphError, "engine.GraphMut", err)
	}
	if err := e.pdcManager.Analyze(e.graph); err != nil {
		e.log.Error("pdc analysis failed", "id", e.id.String(), "err", err)
		return Wrap(KindGraphError, "engine.GraphMut", err)
	}
	return nil
}

// Transport returns the fluent transport control handle.
func (e *Engine) Transport() transport.Handle { return e.transportHandle }

// Metering returns the metering control handle.
func (e *Engine) Metering() *metering.Handle { return e.meteringHandle }

// PDC returns the plugin delay compensation control handle.
func (e *Engine) PDC() pdc.Handle { return e.pdcHandle }

// MIDI returns the MIDI routing and dispatch handle.
func (e *Engine) MIDI() *midi.Handle { return e.midiHandle }

// Export returns a fresh offline render builder bound to the engine's
// current backend, PDC state and sample rate (spec §4.8, §6).
func (e *Engine) Export() *export.Builder {
	return export.NewBuilder(e.backend, e.pdcHandle, e.cfg.SampleRate)
}

// Close stops the audio device. The engine must not be used again
// after Close.
func (e *Engine) Close() error {
	if e.driver == nil {
		return nil
	}
	if err := e.driver.Stop(); err != nil {
		return Wrap(KindInvalidDevice, "engine.Close", err)
	}
	e.log.Info("engine closed", "id", e.id.String())
	return nil
}
