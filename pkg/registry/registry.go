package registry

import (
	"fmt"
	"sync"

	"github.com/justyntemme/rtaudio/pkg/graph"
	"github.com/justyntemme/rtaudio/pkg/rterr"
)

// Constructor builds an AudioUnit from a parameter map, or fails with an
// invalid-parameter error (spec §4.9).
type Constructor func(params Params) (graph.AudioUnit, error)

// Registry is the string-keyed type_name → Constructor map (spec §4.9).
// It is a plain control-thread object protected by a mutex; it is never
// consulted from the audio thread.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register binds typeName to constructor, overwriting any existing
// binding for the same name.
func (r *Registry) Register(typeName string, constructor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.constructors[typeName] = constructor
}

// Unregister removes typeName's binding, if any.
func (r *Registry) Unregister(typeName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.constructors, typeName)
}

// Has reports whether typeName is bound.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.constructors[typeName]
	return ok
}

// TypeNames returns every registered type name, in no particular order.
func (r *Registry) TypeNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}
	return names
}

// Create instantiates typeName with params, failing with
// rterr.KindNodeRegistry if typeName is unbound or the constructor
// itself rejects params.
func (r *Registry) Create(typeName string, params Params) (graph.AudioUnit, error) {
	r.mu.RLock()
	constructor, ok := r.constructors[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, rterr.New(rterr.KindNodeRegistry, "registry.Create", fmt.Sprintf("unknown node type %q", typeName))
	}
	unit, err := constructor(params)
	if err != nil {
		return nil, rterr.Wrap(rterr.KindNodeRegistry, "registry.Create", err)
	}
	return unit, nil
}
