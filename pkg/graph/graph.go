package graph

import (
	"sync"
	"sync/atomic"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// NodeId is an opaque stable identifier for an audio unit within a
// graph, assigned when the unit is added (spec §3). Identity is an
// atomic monotonically-increasing sequence, per the design notes (spec
// §9) — never a UUID, since node identity is touched on every graph
// mutation and must stay cheap.
type NodeId uint64

var nodeIDSeq atomic.Uint64

func nextNodeID() NodeId {
	return NodeId(nodeIDSeq.Add(1))
}

// Edge connects an output port of one node to an input port of another.
type Edge struct {
	SrcNode NodeId
	SrcPort int
	DstNode NodeId
	DstPort int
}

// MasterEdge connects a node's output port directly to a master output
// channel.
type MasterEdge struct {
	SrcNode NodeId
	SrcPort int
	Channel int
}

// NodeInfo describes a node for introspection (spec §4.3).
type NodeInfo struct {
	ID        NodeId
	Tag       string
	HasTag    bool
	Inputs    int
	Outputs   int
	TypeID    uint64
	Footprint int
}

// Graph is the mutable front-end builder the control thread edits
// (spec §4.3). It exclusively owns its AudioUnits until a Commit moves
// the compiled form to a Backend.
type Graph struct {
	mu sync.Mutex

	units      map[NodeId]AudioUnit
	order      []NodeId // insertion order, for deterministic Nodes()/compile order
	edges      []Edge
	masterOut  []MasterEdge
	tags       map[NodeId]string
	numInputs  int
	numOutputs int

	dirty bool // set by any mutating op; cleared by Commit
}

// New creates an empty graph declaring the given master input/output
// channel counts (fixed at construction, per spec §3 invariants).
func New(numInputs, numOutputs int) *Graph {
	return &Graph{
		units:      make(map[NodeId]AudioUnit),
		tags:       make(map[NodeId]string),
		numInputs:  numInputs,
		numOutputs: numOutputs,
	}
}

// NumInputs returns the declared master input channel count.
func (g *Graph) NumInputs() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.numInputs
}

// NumOutputs returns the declared master output channel count.
func (g *Graph) NumOutputs() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.numOutputs
}

// Add inserts a unit and returns its assigned NodeId.
func (g *Graph) Add(unit AudioUnit) NodeId {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addLocked(unit)
}

// AddTagged inserts a unit with a human-readable tag.
func (g *Graph) AddTagged(unit AudioUnit, tag string) NodeId {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.addLocked(unit)
	g.tags[id] = tag
	return id
}

func (g *Graph) addLocked(unit AudioUnit) NodeId {
	id := nextNodeID()
	g.units[id] = unit
	g.order = append(g.order, id)
	g.dirty = true
	return id
}

// Contains reports whether node exists in the graph.
func (g *Graph) Contains(node NodeId) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.units[node]
	return ok
}

// ConnectPorts connects an output port of src to an input port of dst.
func (g *Graph) ConnectPorts(src NodeId, srcPort int, dst NodeId, dstPort int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	srcUnit, ok := g.units[src]
	if !ok {
		return rterr.New(rterr.KindGraphError, "graph.ConnectPorts", "source node not found")
	}
	dstUnit, ok := g.units[dst]
	if !ok {
		return rterr.New(rterr.KindGraphError, "graph.ConnectPorts", "destination node not found")
	}
	if srcPort < 0 || srcPort >= srcUnit.Outputs() {
		return rterr.New(rterr.KindGraphError, "graph.ConnectPorts", "source port out of range")
	}
	if dstPort < 0 || dstPort >= dstUnit.Inputs() {
		return rterr.New(rterr.KindGraphError, "graph.ConnectPorts", "destination port out of range")
	}

	g.edges = append(g.edges, Edge{SrcNode: src, SrcPort: srcPort, DstNode: dst, DstPort: dstPort})
	g.dirty = true
	return nil
}

// Pipe connects src's outputs to dst's inputs in order, up to
// min(src.Outputs(), dst.Inputs()).
func (g *Graph) Pipe(src, dst NodeId) error {
	g.mu.Lock()
	srcUnit, ok := g.units[src]
	if !ok {
		g.mu.Unlock()
		return rterr.New(rterr.KindGraphError, "graph.Pipe", "source node not found")
	}
	dstUnit, ok := g.units[dst]
	if !ok {
		g.mu.Unlock()
		return rterr.New(rterr.KindGraphError, "graph.Pipe", "destination node not found")
	}
	n := srcUnit.Outputs()
	if dstUnit.Inputs() < n {
		n = dstUnit.Inputs()
	}
	g.mu.Unlock()

	for port := 0; port < n; port++ {
		if err := g.ConnectPorts(src, port, dst, port); err != nil {
			return err
		}
	}
	return nil
}

// PipeAll connects src's outputs to dst's inputs in order, requiring the
// channel counts to match exactly.
func (g *Graph) PipeAll(src, dst NodeId) error {
	g.mu.Lock()
	srcUnit, ok := g.units[src]
	if !ok {
		g.mu.Unlock()
		return rterr.New(rterr.KindGraphError, "graph.PipeAll", "source node not found")
	}
	dstUnit, ok := g.units[dst]
	if !ok {
		g.mu.Unlock()
		return rterr.New(rterr.KindGraphError, "graph.PipeAll", "destination node not found")
	}
	if srcUnit.Outputs() != dstUnit.Inputs() {
		g.mu.Unlock()
		return rterr.New(rterr.KindGraphError, "graph.PipeAll", "channel count mismatch")
	}
	n := srcUnit.Outputs()
	g.mu.Unlock()

	for port := 0; port < n; port++ {
		if err := g.ConnectPorts(src, port, dst, port); err != nil {
			return err
		}
	}
	return nil
}

// PipeOutput connects src's outputs to the master output channels in
// order, up to min(src.Outputs(), NumOutputs()).
func (g *Graph) PipeOutput(src NodeId) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	unit, ok := g.units[src]
	if !ok {
		return rterr.New(rterr.KindGraphError, "graph.PipeOutput", "node not found")
	}
	n := unit.Outputs()
	if g.numOutputs < n {
		n = g.numOutputs
	}
	for port := 0; port < n; port++ {
		g.masterOut = append(g.masterOut, MasterEdge{SrcNode: src, SrcPort: port, Channel: port})
	}
	g.dirty = true
	return nil
}

// Remove deletes a node and every edge referencing it. The front-end
// remains unchanged if node does not exist.
func (g *Graph) Remove(node NodeId) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.units[node]; !ok {
		return rterr.New(rterr.KindGraphError, "graph.Remove", "node not found")
	}

	delete(g.units, node)
	delete(g.tags, node)

	for i, id := range g.order {
		if id == node {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	filtered := g.edges[:0]
	for _, e := range g.edges {
		if e.SrcNode != node && e.DstNode != node {
			filtered = append(filtered, e)
		}
	}
	g.edges = filtered

	filteredOut := g.masterOut[:0]
	for _, e := range g.masterOut {
		if e.SrcNode != node {
			filteredOut = append(filteredOut, e)
		}
	}
	g.masterOut = filteredOut

	g.dirty = true
	return nil
}

// Reset removes every node, edge, and tag, restoring the graph to an
// empty state (channel counts are preserved).
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.units = make(map[NodeId]AudioUnit)
	g.order = nil
	g.edges = nil
	g.masterOut = nil
	g.tags = make(map[NodeId]string)
	g.dirty = true
}

// Nodes returns NodeInfo for every node, in insertion order.
func (g *Graph) Nodes() []NodeInfo {
	g.mu.Lock()
	defer g.mu.Unlock()

	infos := make([]NodeInfo, 0, len(g.order))
	for _, id := range g.order {
		infos = append(infos, g.nodeInfoLocked(id))
	}
	return infos
}

// NodeInfo returns info for a single node.
func (g *Graph) NodeInfo(id NodeId) (NodeInfo, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.units[id]; !ok {
		return NodeInfo{}, rterr.New(rterr.KindGraphError, "graph.NodeInfo", "node not found")
	}
	return g.nodeInfoLocked(id), nil
}

func (g *Graph) nodeInfoLocked(id NodeId) NodeInfo {
	unit := g.units[id]
	tag, hasTag := g.tags[id]
	return NodeInfo{
		ID:        id,
		Tag:       tag,
		HasTag:    hasTag,
		Inputs:    unit.Inputs(),
		Outputs:   unit.Outputs(),
		TypeID:    unit.TypeID(),
		Footprint: unit.Footprint(),
	}
}

// FindByTag returns the NodeId tagged with tag, if any.
func (g *Graph) FindByTag(tag string) (NodeId, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for id, t := range g.tags {
		if t == tag {
			return id, true
		}
	}
	return 0, false
}

// Edges returns a copy of the graph's node-to-node edges, for PDC
// latency traversal.
func (g *Graph) Edges() []Edge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// MasterEdges returns a copy of the graph's master-output connections.
func (g *Graph) MasterEdges() []MasterEdge {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]MasterEdge, len(g.masterOut))
	copy(out, g.masterOut)
	return out
}

// RouteLatencies walks the graph in topological order and asks every
// unit to declare its per-output-port latency given the latencies
// arriving at its inputs (spec §4.5 step 1). Where multiple edges feed
// the same input port, the port's incoming latency is the max of their
// sources' latencies. Fails if the graph contains a cycle.
func (g *Graph) RouteLatencies() (map[NodeId][]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, err := topoSortLocked(g)
	if err != nil {
		return nil, err
	}

	inputsByDst := make(map[NodeId][]Edge)
	for _, e := range g.edges {
		inputsByDst[e.DstNode] = append(inputsByDst[e.DstNode], e)
	}

	outLatency := make(map[NodeId][]int, len(order))
	for _, id := range order {
		unit := g.units[id]
		in := make([]int, unit.Inputs())
		for _, e := range inputsByDst[id] {
			lat := 0
			if srcLat, ok := outLatency[e.SrcNode]; ok && e.SrcPort < len(srcLat) {
				lat = srcLat[e.SrcPort]
			}
			if lat > in[e.DstPort] {
				in[e.DstPort] = lat
			}
		}
		outLatency[id] = unit.Route(in)
	}
	return outLatency, nil
}

// ReplaceMasterSource redirects a master-output connection from
// (oldSrc, oldPort) to (newSrc, newPort) on the given channel, used by
// PDC to splice a compensation delay unit between a node and the
// master bus. Fails if no matching master edge exists.
func (g *Graph) ReplaceMasterSource(channel int, oldSrc NodeId, oldPort int, newSrc NodeId, newPort int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i, e := range g.masterOut {
		if e.Channel == channel && e.SrcNode == oldSrc && e.SrcPort == oldPort {
			g.masterOut[i] = MasterEdge{SrcNode: newSrc, SrcPort: newPort, Channel: channel}
			g.dirty = true
			return nil
		}
	}
	return rterr.New(rterr.KindGraphError, "graph.ReplaceMasterSource", "master edge not found")
}

// Dirty reports whether the graph has been mutated since the last
// Commit — the structural-change bit the engine's outer shell uses to
// decide whether a lazy rebuild is needed (spec §4.3).
func (g *Graph) Dirty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.dirty
}
