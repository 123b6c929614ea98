package graph

import (
	"sync"
	"testing"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

func TestCompileRejectsCycle(t *testing.T) {
	g := New(1, 1)
	a := g.Add(&passthroughUnit{gain: 1})
	b := g.Add(&passthroughUnit{gain: 1})
	if err := g.Pipe(a, b); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if err := g.Pipe(b, a); err != nil {
		t.Fatalf("Pipe: %v", err)
	}

	_, err := Compile(g, 64)
	if err == nil {
		t.Fatal("expected cycle to be rejected")
	}
	if !rterr.Is(err, rterr.KindGraphError) {
		t.Errorf("expected KindGraphError, got %v", err)
	}
}

func TestCompileAndProcessSimpleChain(t *testing.T) {
	g := New(1, 1)
	osc := g.Add(&oscUnit{value: 2})
	pt := g.Add(&passthroughUnit{gain: 3})
	if err := g.Pipe(osc, pt); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	if err := g.PipeOutput(pt); err != nil {
		t.Fatalf("PipeOutput: %v", err)
	}

	b, err := Compile(g, 32)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	b.Process(8)
	out := b.MasterChannel(0)
	for i := 0; i < 8; i++ {
		if out[i] != 6 {
			t.Fatalf("expected sample %d to be 6, got %f", i, out[i])
		}
	}
}

func TestCompileSumsMultipleSourcesOnSamePort(t *testing.T) {
	g := New(1, 1)
	a := g.Add(&oscUnit{value: 1})
	bOsc := g.Add(&oscUnit{value: 2})
	pt := g.Add(&passthroughUnit{gain: 1})

	if err := g.ConnectPorts(a, 0, pt, 0); err != nil {
		t.Fatalf("ConnectPorts: %v", err)
	}
	if err := g.ConnectPorts(bOsc, 0, pt, 0); err != nil {
		t.Fatalf("ConnectPorts: %v", err)
	}
	if err := g.PipeOutput(pt); err != nil {
		t.Fatalf("PipeOutput: %v", err)
	}

	backend, err := Compile(g, 16)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	backend.Process(4)
	out := backend.MasterChannel(0)
	for i := 0; i < 4; i++ {
		if out[i] != 3 {
			t.Fatalf("expected summed sample %d to be 3, got %f", i, out[i])
		}
	}
}

// TestBackendHandleHotSwap exercises the render-callback-facing contract:
// every Load() during a block sees one consistent backend, and a Commit
// from another goroutine never hands back a torn pointer.
func TestBackendHandleHotSwap(t *testing.T) {
	g := New(1, 1)
	osc := g.Add(&oscUnit{value: 1})
	if err := g.PipeOutput(osc); err != nil {
		t.Fatalf("PipeOutput: %v", err)
	}
	initial, err := Compile(g, 64)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	handle := NewBackendHandle(initial)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			b := handle.Load()
			if b == nil {
				t.Error("render thread observed a nil backend")
				return
			}
			b.Process(16)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			g2 := New(1, 1)
			o := g2.Add(&oscUnit{value: float32(i)})
			_ = g2.PipeOutput(o)
			nb, err := Compile(g2, 64)
			if err != nil {
				t.Errorf("Compile: %v", err)
				return
			}
			handle.Store(nb)
		}
	}()

	wg.Wait()
}
