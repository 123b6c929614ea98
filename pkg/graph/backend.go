package graph

import (
	"github.com/justyntemme/rtaudio/pkg/rterr"
)

type source struct {
	nodeIdx int
	port    int
}

type compiledNode struct {
	id      NodeId
	unit    AudioUnit
	inputs  [][]source  // per input port, sources to sum
	inBufs  [][]float32 // per input port scratch, len == maxBlockSize
	outBufs [][]float32 // per output port scratch, len == maxBlockSize

	// inSlices/outSlices are the outer [][]float32 passed to
	// unit.Process, allocated once here and resliced to the current
	// frame count in Process — Process itself never allocates.
	inSlices  [][]float32
	outSlices [][]float32
}

type masterEdge struct {
	nodeIdx int
	port    int
	channel int
}

// Backend is the immutable, compiled artifact consumed by the render
// callback (spec §4.4): a topologically ordered unit list, per-edge
// scratch buffers sized to the maximum block length, and the master
// output channel mapping. It never allocates once built.
type Backend struct {
	nodes        []*compiledNode
	masterEdges  []masterEdge
	masterBufs   [][]float32
	numOutputs   int
	maxBlockSize int
}

// Compile builds a Backend from the current state of g. It fails with a
// GraphError if the graph contains a cycle — PDC and topological
// processing both require a DAG (spec §4.5 edge cases).
func Compile(g *Graph, maxBlockSize int) (*Backend, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	order, err := topoSortLocked(g)
	if err != nil {
		return nil, err
	}

	nodeIdx := make(map[NodeId]int, len(order))
	nodes := make([]*compiledNode, len(order))
	for i, id := range order {
		nodeIdx[id] = i
		unit := g.units[id]
		cn := &compiledNode{id: id, unit: unit}
		cn.inputs = make([][]source, unit.Inputs())
		cn.inBufs = make([][]float32, unit.Inputs())
		for p := range cn.inBufs {
			cn.inBufs[p] = make([]float32, maxBlockSize)
		}
		cn.outBufs = make([][]float32, unit.Outputs())
		for p := range cn.outBufs {
			cn.outBufs[p] = make([]float32, maxBlockSize)
		}
		cn.inSlices = make([][]float32, unit.Inputs())
		cn.outSlices = make([][]float32, unit.Outputs())
		nodes[i] = cn
	}

	for _, e := range g.edges {
		dstIdx, ok := nodeIdx[e.DstNode]
		if !ok {
			continue
		}
		srcIdx, ok := nodeIdx[e.SrcNode]
		if !ok {
			continue
		}
		nodes[dstIdx].inputs[e.DstPort] = append(nodes[dstIdx].inputs[e.DstPort], source{nodeIdx: srcIdx, port: e.SrcPort})
	}

	masterEdges := make([]masterEdge, 0, len(g.masterOut))
	for _, e := range g.masterOut {
		srcIdx, ok := nodeIdx[e.SrcNode]
		if !ok {
			continue
		}
		masterEdges = append(masterEdges, masterEdge{nodeIdx: srcIdx, port: e.SrcPort, channel: e.Channel})
	}

	masterBufs := make([][]float32, g.numOutputs)
	for ch := range masterBufs {
		masterBufs[ch] = make([]float32, maxBlockSize)
	}

	g.dirty = false

	return &Backend{
		nodes:        nodes,
		masterEdges:  masterEdges,
		masterBufs:   masterBufs,
		numOutputs:   g.numOutputs,
		maxBlockSize: maxBlockSize,
	}, nil
}

// topoSortLocked performs a Kahn's-algorithm topological sort over the
// graph's nodes and edges. g.mu must already be held.
func topoSortLocked(g *Graph) ([]NodeId, error) {
	indegree := make(map[NodeId]int, len(g.order))
	adj := make(map[NodeId][]NodeId, len(g.order))
	for _, id := range g.order {
		indegree[id] = 0
	}
	for _, e := range g.edges {
		if _, ok := g.units[e.SrcNode]; !ok {
			continue
		}
		if _, ok := g.units[e.DstNode]; !ok {
			continue
		}
		adj[e.SrcNode] = append(adj[e.SrcNode], e.DstNode)
		indegree[e.DstNode]++
	}

	queue := make([]NodeId, 0, len(g.order))
	for _, id := range g.order {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]NodeId, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)
		for _, next := range adj[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(g.order) {
		return nil, rterr.New(rterr.KindGraphError, "graph.Compile", "cycle detected")
	}
	return order, nil
}

// Process runs every unit in topological order for a block of frames,
// gathering (and summing, for ports with multiple incoming edges) each
// unit's inputs from upstream scratch buffers, then mixes the declared
// master outputs into the backend's master scratch buffers. frames must
// not exceed maxBlockSize.
func (b *Backend) Process(frames int) {
	for _, n := range b.nodes {
		for port, srcs := range n.inputs {
			buf := n.inBufs[port][:frames]
			clearBuf(buf)
			for _, s := range srcs {
				addBuf(buf, b.nodes[s.nodeIdx].outBufs[s.port][:frames])
			}
		}
		for p := range n.inSlices {
			n.inSlices[p] = n.inBufs[p][:frames]
		}
		for p := range n.outSlices {
			n.outSlices[p] = n.outBufs[p][:frames]
		}
		n.unit.Process(frames, n.inSlices, n.outSlices)
	}

	for ch := range b.masterBufs {
		clearBuf(b.masterBufs[ch][:frames])
	}
	for _, me := range b.masterEdges {
		addBuf(b.masterBufs[me.channel][:frames], b.nodes[me.nodeIdx].outBufs[me.port][:frames])
	}
}

// MasterChannel returns the scratch buffer for a master output channel
// after Process has run. The slice is maxBlockSize long; only its first
// frames samples (from the most recent Process call) are valid.
func (b *Backend) MasterChannel(channel int) []float32 {
	return b.masterBufs[channel]
}

// NumOutputs returns the number of master output channels.
func (b *Backend) NumOutputs() int {
	return b.numOutputs
}

// Reset resets every unit's internal state.
func (b *Backend) Reset() {
	for _, n := range b.nodes {
		n.unit.Reset()
	}
}

func clearBuf(buf []float32) {
	for i := range buf {
		buf[i] = 0
	}
}

func addBuf(dst, src []float32) {
	for i := range dst {
		dst[i] += src[i]
	}
}
