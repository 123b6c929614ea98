package graph

import "testing"

func TestAddAndNodeInfo(t *testing.T) {
	g := New(2, 2)
	id := g.AddTagged(&oscUnit{value: 1}, "osc")

	info, err := g.NodeInfo(id)
	if err != nil {
		t.Fatalf("NodeInfo: %v", err)
	}
	if info.Tag != "osc" || !info.HasTag {
		t.Errorf("expected tag %q, got %q (hasTag=%v)", "osc", info.Tag, info.HasTag)
	}
	if info.Outputs != 1 {
		t.Errorf("expected 1 output, got %d", info.Outputs)
	}
}

func TestConnectPortsRejectsOutOfRange(t *testing.T) {
	g := New(2, 2)
	osc := g.Add(&oscUnit{})
	pt := g.Add(&passthroughUnit{gain: 1})

	if err := g.ConnectPorts(osc, 3, pt, 0); err == nil {
		t.Fatal("expected error for out-of-range source port")
	}
	if err := g.ConnectPorts(osc, 0, pt, 3); err == nil {
		t.Fatal("expected error for out-of-range destination port")
	}
}

func TestConnectPortsUnknownNode(t *testing.T) {
	g := New(1, 1)
	osc := g.Add(&oscUnit{})
	if err := g.ConnectPorts(osc, 0, NodeId(9999), 0); err == nil {
		t.Fatal("expected error for unknown destination node")
	}
}

func TestFindByTag(t *testing.T) {
	g := New(1, 1)
	id := g.AddTagged(&oscUnit{}, "main-osc")
	found, ok := g.FindByTag("main-osc")
	if !ok || found != id {
		t.Fatalf("expected to find tagged node %v, got %v (ok=%v)", id, found, ok)
	}
	if _, ok := g.FindByTag("missing"); ok {
		t.Error("expected FindByTag to report false for unknown tag")
	}
}

func TestRemoveDropsEdges(t *testing.T) {
	g := New(1, 1)
	osc := g.Add(&oscUnit{value: 1})
	pt := g.Add(&passthroughUnit{gain: 1})
	if err := g.Pipe(osc, pt); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if err := g.Remove(osc); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(g.edges) != 0 {
		t.Errorf("expected edges referencing removed node to be dropped, got %d", len(g.edges))
	}
	if g.Contains(osc) {
		t.Error("expected node to no longer be present after Remove")
	}
}

func TestDirtyTracksMutation(t *testing.T) {
	g := New(1, 1)
	if g.Dirty() {
		t.Error("expected a fresh graph to not be dirty")
	}
	g.Add(&oscUnit{})
	if !g.Dirty() {
		t.Error("expected Add to mark the graph dirty")
	}
}

func TestPipeAllRequiresExactChannelMatch(t *testing.T) {
	g := New(2, 2)
	osc := g.Add(&oscUnit{}) // 1 output
	pt2 := g.Add(&stereoPassthrough{})
	if err := g.PipeAll(osc, pt2); err == nil {
		t.Fatal("expected channel mismatch error")
	}
}

type stereoPassthrough struct{}

func (s *stereoPassthrough) Inputs() int    { return 2 }
func (s *stereoPassthrough) Outputs() int   { return 2 }
func (s *stereoPassthrough) TypeID() uint64 { return 3 }
func (s *stereoPassthrough) Tick(input, output []float32) {
	output[0], output[1] = input[0], input[1]
}
func (s *stereoPassthrough) Process(frames int, input, output [][]float32) {
	for i := 0; i < frames; i++ {
		output[0][i] = input[0][i]
		output[1][i] = input[1][i]
	}
}
func (s *stereoPassthrough) Reset()                          {}
func (s *stereoPassthrough) SetSampleRate(sampleRate float64) {}
func (s *stereoPassthrough) Route(inputLatencies []int) []int { return inputLatencies }
func (s *stereoPassthrough) Footprint() int                   { return 16 }
