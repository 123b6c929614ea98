package midi

// Handle is the control-thread surface `Engine.MIDI()` returns: queue
// events for offline delivery, bind live routing, and poll pending
// output. Grounded on transport.Handle's fluent-builder shape, adapted
// to MIDI's registry/routing/snapshot trio.
type Handle struct {
	registry *Registry
	routes   *RoutingTable
	snapshot *Snapshot
}

// NewHandle wires a Handle around an existing registry, routing table
// and snapshot (the engine owns and constructs all three).
func NewHandle(registry *Registry, routes *RoutingTable, snapshot *Snapshot) *Handle {
	return &Handle{registry: registry, routes: routes, snapshot: snapshot}
}

// Bind routes port's live events to unitID. Returns the handle for
// fluent chaining. Registers unitID's registry slot first so the
// audio-thread delivery path never has to grow it.
func (h *Handle) Bind(port int, unitID uint64) *Handle {
	h.registry.Register(unitID)
	h.routes.Bind(port, unitID)
	return h
}

// Unbind removes a live routing binding.
func (h *Handle) Unbind(port int, unitID uint64) *Handle {
	h.routes.Unbind(port, unitID)
	return h
}

// QueueLive queues events for unitID to be consumed on its next
// Process call, bypassing routing — used for programmatic event
// injection (e.g. a UI "play note" button) rather than live input.
func (h *Handle) QueueLive(unitID uint64, events ...Event) *Handle {
	h.registry.Queue(unitID, events)
	return h
}

// ScheduleOffline adds an event at beat to unitID's offline snapshot
// sequence. Call Finalize once scheduling for a render is complete.
func (h *Handle) ScheduleOffline(unitID uint64, beat float64, event Event) *Handle {
	h.snapshot.Add(unitID, beat, event)
	return h
}

// FinalizeOffline sorts every unit's offline sequence by beat, making
// the snapshot ready for a SnapshotReader.
func (h *Handle) FinalizeOffline() *Handle {
	h.snapshot.Finalize()
	return h
}

// Registry returns the underlying event registry, for units that poll
// it directly during Process.
func (h *Handle) Registry() *Registry { return h.registry }

// Snapshot returns the underlying offline snapshot.
func (h *Handle) Snapshot() *Snapshot { return h.snapshot }

// Routes returns the underlying live routing table.
func (h *Handle) Routes() *RoutingTable { return h.routes }
