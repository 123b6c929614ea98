package midi

import "github.com/justyntemme/rtaudio/pkg/atomicx"

// defaultEventCapacity bounds how many events a unit's slot can hold
// across one polling cycle before Queue starts dropping the overflow.
// A unit's slot, once allocated at this capacity, never grows again —
// Poll truncates it back to length zero instead of discarding it, so
// the live-input path (Queue, called from the audio thread) never
// reallocates in steady state.
const defaultEventCapacity = 256

// Registry is the thread-safe routing table from an AudioUnit's id
// (graph.UnitID) to its pending MIDI events. Nodes poll the registry
// during Process to receive events, keyed by unit id rather than
// NodeId so a unit doesn't need to know its own graph identity
// (grounded on original_source/midi_registry.rs's DashMap-backed
// MidiRegistry, reimplemented here over atomicx.ShardedMap since Go's
// ecosystem has no off-the-shelf concurrent sharded map).
type Registry struct {
	events *atomicx.ShardedMap[[]Event]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{events: atomicx.NewShardedMap[[]Event]()}
}

// Register pre-allocates unitID's event slot at full capacity. Call
// this from the control thread before a unit can receive audio-thread
// routed input (Handle.Bind does this) so Queue never has to grow the
// slot's backing array on the audio thread.
func (r *Registry) Register(unitID uint64) {
	r.events.Update(unitID, func(cur []Event, ok bool) []Event {
		if ok {
			return cur
		}
		return make([]Event, 0, defaultEventCapacity)
	})
}

// Queue appends events for unitID, to be polled on the node's next
// Process call. Once the slot reaches defaultEventCapacity, Queue
// drops the overflow rather than growing the backing array — Register
// a unit ahead of time to avoid ever hitting the limit in practice.
func (r *Registry) Queue(unitID uint64, events []Event) {
	if len(events) == 0 {
		return
	}
	r.events.Update(unitID, func(cur []Event, ok bool) []Event {
		if !ok {
			cur = make([]Event, 0, defaultEventCapacity)
		}
		if room := cap(cur) - len(cur); room < len(events) {
			events = events[:room]
		}
		return append(cur, events...)
	})
}

// Poll returns and clears all pending events for unitID, truncating
// the slot back to length zero in place rather than deleting it so its
// capacity survives for the next cycle.
func (r *Registry) Poll(unitID uint64) []Event {
	events, ok := r.events.Take(unitID, func(cur []Event) []Event {
		return cur[:0]
	})
	if !ok {
		return nil
	}
	return events
}

// HasEvents reports whether unitID has pending events.
func (r *Registry) HasEvents(unitID uint64) bool {
	cur, ok := r.events.Get(unitID)
	return ok && len(cur) > 0
}

// Clear removes every pending event for every unit, used when resetting
// the graph.
func (r *Registry) Clear() {
	r.events.Clear()
}

// PendingCount returns the number of units with pending events.
func (r *Registry) PendingCount() int {
	return r.events.CountWhere(func(cur []Event) bool { return len(cur) > 0 })
}
