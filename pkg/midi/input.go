package midi

import (
	"sync"
	"sync/atomic"
)

// PortEvent pairs an incoming Event with the input port it arrived on
// and a frame offset already resolved against the current render
// block (spec §4.7).
type PortEvent struct {
	Port  int
	Event Event
}

// InputSource is the live MIDI collaborator the render callback polls
// once per block. Implementations own whatever platform MIDI API
// feeds them (CoreMIDI, ALSA, a virtual port) and are responsible for
// resolving wall-clock timestamps to frame offsets within the
// requested block before returning.
type InputSource interface {
	// CycleRead returns every event that arrived for this block, with
	// SampleOffset() already expressed relative to bufferStart.
	CycleRead(frames int, bufferStart int64, sampleRate float64) []PortEvent
}

// RoutingTable maps input ports to the audio unit ids that should
// receive their events, many-to-many — one port can feed several
// units (e.g. a MIDI-thru splitter) and one unit can listen on several
// ports (e.g. merged keyboard + controller input).
//
// Reads (Targets) run on the audio thread once per block and must
// neither block nor allocate, so the table is published as a
// copy-on-write map behind an atomic pointer: Bind/Unbind (control
// thread) build a new map and swap it in, while Targets just loads the
// pointer and indexes it directly.
type RoutingTable struct {
	mu     sync.Mutex // serializes writers; Targets never touches it
	routes atomic.Pointer[map[int][]uint64]
}

// NewRoutingTable creates an empty routing table.
func NewRoutingTable() *RoutingTable {
	t := &RoutingTable{}
	empty := make(map[int][]uint64)
	t.routes.Store(&empty)
	return t
}

// Bind routes port's events to unitID, returning the table for
// fluent chaining.
func (t *RoutingTable) Bind(port int, unitID uint64) *RoutingTable {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := *t.routes.Load()
	for _, existing := range cur[port] {
		if existing == unitID {
			return t
		}
	}
	next := copyRoutes(cur)
	next[port] = append(next[port], unitID)
	t.routes.Store(&next)
	return t
}

// Unbind removes unitID from port's route list.
func (t *RoutingTable) Unbind(port int, unitID uint64) *RoutingTable {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := *t.routes.Load()
	idx := -1
	for i, existing := range cur[port] {
		if existing == unitID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return t
	}
	next := copyRoutes(cur)
	next[port] = append(next[port][:idx], next[port][idx+1:]...)
	t.routes.Store(&next)
	return t
}

// Targets returns the unit ids currently bound to port. Called from
// the audio thread; the returned slice is never mutated in place by a
// later Bind/Unbind, so it is safe to read without copying.
func (t *RoutingTable) Targets(port int) []uint64 {
	routes := *t.routes.Load()
	return routes[port]
}

// Clear removes every binding.
func (t *RoutingTable) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	empty := make(map[int][]uint64)
	t.routes.Store(&empty)
}

func copyRoutes(src map[int][]uint64) map[int][]uint64 {
	dst := make(map[int][]uint64, len(src))
	for port, ids := range src {
		dst[port] = append([]uint64(nil), ids...)
	}
	return dst
}

// CycleReader drives the live input path: poll the source once per
// block, translate (port, event) pairs to (unit_id, event) pairs via
// the routing table, and queue them in the registry for each unit's
// next Process call.
type CycleReader struct {
	source  InputSource
	routes  *RoutingTable
	target  *Registry
	scratch map[uint64][]Event // reused across calls, cleared in place
}

// NewCycleReader binds a source, a routing table and the registry the
// translated events should land in.
func NewCycleReader(source InputSource, routes *RoutingTable, target *Registry) *CycleReader {
	return &CycleReader{source: source, routes: routes, target: target, scratch: make(map[uint64][]Event)}
}

// CycleRead polls the source for this block and queues routed events,
// returning the number of events queued. Called once per render block
// from the audio thread; InputSource implementations must not block or
// allocate unboundedly to keep this call real-time safe. The per-unit
// grouping map is allocated once at construction and its slices are
// truncated in place rather than rebuilt, so a block with events never
// allocates beyond the first time a given unit id is seen.
func (r *CycleReader) CycleRead(frames int, bufferStart int64, sampleRate float64) int {
	events := r.source.CycleRead(frames, bufferStart, sampleRate)
	if len(events) == 0 {
		return 0
	}

	for unitID, evs := range r.scratch {
		r.scratch[unitID] = evs[:0]
	}
	for _, pe := range events {
		for _, unitID := range r.routes.Targets(pe.Port) {
			r.scratch[unitID] = append(r.scratch[unitID], pe.Event)
		}
	}

	queued := 0
	for unitID, evs := range r.scratch {
		if len(evs) == 0 {
			continue
		}
		r.target.Queue(unitID, evs)
		queued += len(evs)
	}
	return queued
}
