package registry

import (
	"testing"

	"github.com/justyntemme/rtaudio/pkg/graph"
	"github.com/justyntemme/rtaudio/pkg/rterr"
)

type fakeOsc struct {
	freq float64
}

func (f *fakeOsc) Inputs() int                                    { return 0 }
func (f *fakeOsc) Outputs() int                                   { return 1 }
func (f *fakeOsc) TypeID() uint64                                 { return 1 }
func (f *fakeOsc) Tick(input, output []float32)                   {}
func (f *fakeOsc) Process(frames int, input, output [][]float32)  {}
func (f *fakeOsc) Reset()                                         {}
func (f *fakeOsc) SetSampleRate(sampleRate float64)                {}
func (f *fakeOsc) Route(inputLatencies []int) []int               { return []int{0} }
func (f *fakeOsc) Footprint() int                                 { return 0 }

func oscConstructor(params Params) (graph.AudioUnit, error) {
	freq, err := params.Float("freq")
	if err != nil {
		return nil, err
	}
	return &fakeOsc{freq: freq}, nil
}

func TestRegistryCreateKnownType(t *testing.T) {
	r := New()
	r.Register("osc", oscConstructor)

	unit, err := r.Create("osc", Params{"freq": Float(440)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	osc := unit.(*fakeOsc)
	if osc.freq != 440 {
		t.Errorf("expected freq 440, got %v", osc.freq)
	}
}

func TestRegistryCreateUnknownTypeErrors(t *testing.T) {
	r := New()
	if _, err := r.Create("missing", Params{}); !rterr.Is(err, rterr.KindNodeRegistry) {
		t.Fatalf("expected KindNodeRegistry for unknown type, got %v", err)
	}
}

func TestRegistryCreatePropagatesConstructorError(t *testing.T) {
	r := New()
	r.Register("osc", oscConstructor)
	if _, err := r.Create("osc", Params{}); !rterr.Is(err, rterr.KindNodeRegistry) {
		t.Fatalf("expected constructor's missing-param error to be KindNodeRegistry, got %v", err)
	}
}

func TestRegistryHasAndUnregister(t *testing.T) {
	r := New()
	r.Register("osc", oscConstructor)
	if !r.Has("osc") {
		t.Fatal("expected osc to be registered")
	}
	r.Unregister("osc")
	if r.Has("osc") {
		t.Fatal("expected osc to be unregistered")
	}
}

func TestRegistryTypeNames(t *testing.T) {
	r := New()
	r.Register("osc", oscConstructor)
	r.Register("filter", oscConstructor)
	names := r.TypeNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 type names, got %d", len(names))
	}
}
