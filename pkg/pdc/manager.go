package pdc

import (
	"sync"

	"github.com/justyntemme/rtaudio/pkg/atomicx"
	"github.com/justyntemme/rtaudio/pkg/graph"
)

// pathKey identifies one contributing path into a master channel by
// its immediate source node and port — the unit the spec's worked
// scenario calls "path A" / "path B".
type pathKey struct {
	node    graph.NodeId
	port    int
	channel int
}

// insertedDelay tracks a delay unit Analyze has spliced onto a path, so
// a later Analyze call can resize it in place instead of inserting a
// new node every time the graph is re-examined.
type insertedDelay struct {
	nodeID graph.NodeId
	unit   *MonoDelay
}

// Manager computes per-channel and per-path latency compensation from a
// graph's route-query results and splices delay units onto shorter
// paths so every signal reaching a master output channel is
// phase-aligned (spec §4.5).
type Manager struct {
	bypass atomicx.Flag

	mu             sync.Mutex
	maxLatency     map[int]int
	manualLatency  map[int]int // caller-asserted floor per channel, e.g. downstream device latency
	compensation   map[pathKey]int
	delayNodes     map[pathKey]insertedDelay
}

// NewManager creates a PDC manager, not bypassed.
func NewManager() *Manager {
	return &Manager{
		maxLatency:    make(map[int]int),
		manualLatency: make(map[int]int),
		compensation:  make(map[pathKey]int),
		delayNodes:    make(map[pathKey]insertedDelay),
	}
}

// SetChannelLatency asserts a latency floor for channel that Analyze
// will respect even if no graph path reports as much — for latency
// introduced downstream of the graph (e.g. a hardware device's own
// round-trip) that route queries cannot see.
func (m *Manager) SetChannelLatency(channel, samples int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manualLatency[channel] = samples
}

// Enable clears the bypass flag.
func (m *Manager) Enable() { m.bypass.Store(false) }

// Disable sets the bypass flag; Analyze still computes diagnostics but
// skips inserting delay units.
func (m *Manager) Disable() { m.bypass.Store(true) }

// Bypassed reports whether PDC is currently bypassed.
func (m *Manager) Bypassed() bool { return m.bypass.Load() }

// MaxLatency returns the longest latency of any path feeding channel.
func (m *Manager) MaxLatency(channel int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxLatency[channel]
}

// ChannelCompensation returns the number of samples of delay inserted
// on the path from node/port into channel.
func (m *Manager) ChannelCompensation(node graph.NodeId, port, channel int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.compensation[pathKey{node: node, port: port, channel: channel}]
}

// Analyze runs the full PDC pass (spec §4.5 steps 1-4): it walks g's
// route queries to find each master channel's max latency, then
// inserts (or resizes) a delay unit on every shorter path so all paths
// reaching a channel share the same total latency. Call after any
// structural change, before the next backend Compile.
func (m *Manager) Analyze(g *graph.Graph) error {
	latencies, err := g.RouteLatencies()
	if err != nil {
		return err
	}

	masterEdges := g.MasterEdges()

	maxLatency := make(map[int]int)
	pathLatency := make(map[pathKey]int, len(masterEdges))
	for _, e := range masterEdges {
		lat := 0
		if out, ok := latencies[e.SrcNode]; ok && e.SrcPort < len(out) {
			lat = out[e.SrcPort]
		}
		key := pathKey{node: e.SrcNode, port: e.SrcPort, channel: e.Channel}
		pathLatency[key] = lat
		if lat > maxLatency[e.Channel] {
			maxLatency[e.Channel] = lat
		}
	}

	m.mu.Lock()
	for ch, manual := range m.manualLatency {
		if manual > maxLatency[ch] {
			maxLatency[ch] = manual
		}
	}
	m.mu.Unlock()

	compensation := make(map[pathKey]int, len(pathLatency))
	bypassed := m.bypass.Load()
	for key, lat := range pathLatency {
		need := maxLatency[key.channel] - lat
		compensation[key] = need
		if bypassed {
			continue
		}
		if err := m.applyCompensation(g, key, need); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.maxLatency = maxLatency
	m.compensation = compensation
	m.mu.Unlock()
	return nil
}

// applyCompensation splices a delay unit of the right length between
// key's source node and the master channel it feeds, reusing a
// previously-inserted delay node if one exists for this path.
func (m *Manager) applyCompensation(g *graph.Graph, key pathKey, samples int) error {
	m.mu.Lock()
	existing, exists := m.delayNodes[key]
	m.mu.Unlock()

	if exists && g.Contains(existing.nodeID) {
		existing.unit.SetDelaySamples(samples)
		return nil
	}
	if samples <= 0 {
		return nil
	}

	delayUnit := NewMonoDelay(samples)
	newID := g.Add(delayUnit)
	if err := g.ConnectPorts(key.node, key.port, newID, 0); err != nil {
		return err
	}
	if err := g.ReplaceMasterSource(key.channel, key.node, key.port, newID, 0); err != nil {
		return err
	}

	m.mu.Lock()
	m.delayNodes[key] = insertedDelay{nodeID: newID, unit: delayUnit}
	m.mu.Unlock()
	return nil
}
