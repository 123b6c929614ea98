package graph

import "sync/atomic"

// BackendHandle is the single shared atomic pointer the render callback
// loads from on every block (spec §3, §4.4, §5). A Commit builds a new
// Backend off the audio thread and swaps it in; every in-flight block
// sees exactly one Backend for its entire duration, never a torn
// mid-commit state.
type BackendHandle struct {
	ptr atomic.Pointer[Backend]
}

// NewBackendHandle creates a handle holding an initial backend, which
// may be an empty compiled graph.
func NewBackendHandle(initial *Backend) *BackendHandle {
	h := &BackendHandle{}
	h.ptr.Store(initial)
	return h
}

// Load returns the currently active backend. Safe to call from the
// audio thread; never blocks.
func (h *BackendHandle) Load() *Backend {
	return h.ptr.Load()
}

// Store publishes a newly compiled backend, replacing whatever the
// audio thread was previously reading. The old backend is left for the
// garbage collector once the audio thread has moved past it.
func (h *BackendHandle) Store(b *Backend) {
	h.ptr.Store(b)
}

// Commit compiles g and atomically publishes the result to h. Returns
// the new Backend, or an error if compilation fails (e.g. a cycle) — in
// which case the previously published backend is left untouched.
func (h *BackendHandle) Commit(g *Graph, maxBlockSize int) (*Backend, error) {
	b, err := Compile(g, maxBlockSize)
	if err != nil {
		return nil, err
	}
	h.Store(b)
	return b, nil
}
