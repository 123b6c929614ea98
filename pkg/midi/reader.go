package midi

import (
	"math"
	"sync"
)

// BeatSource is the minimal read interface a SnapshotReader needs from
// whatever drives beat position — satisfied by both
// transport.Handle/Manager and export.Timeline without either package
// importing pkg/midi (spec §4.6: "implements the same read interface
// used by TransportHandle so that graph nodes ... transparently work
// during offline render").
type BeatSource interface {
	CurrentBeat() float64
}

// SnapshotReader wraps a Snapshot with a BeatSource for deterministic
// offline delivery. Each unit tracks its own last-polled beat so
// PollInto returns only newly-elapsed events.
type SnapshotReader struct {
	snapshot *Snapshot
	source   BeatSource

	mu           sync.Mutex
	lastPollBeat map[uint64]float64
}

// NewSnapshotReader creates a reader over snapshot, driven by source.
// snapshot.Finalize should have been called before use.
func NewSnapshotReader(snapshot *Snapshot, source BeatSource) *SnapshotReader {
	return &SnapshotReader{
		snapshot:     snapshot,
		source:       source,
		lastPollBeat: make(map[uint64]float64),
	}
}

// PollInto returns events for unitID in the half-open beat interval
// (last_poll_beat, current_beat], advancing the cursor. Returns zero
// events if the timeline has not advanced since the last call for this
// unit.
func (r *SnapshotReader) PollInto(unitID uint64) []Event {
	current := r.source.CurrentBeat()

	r.mu.Lock()
	last, ok := r.lastPollBeat[unitID]
	if !ok {
		last = math.Inf(-1)
	}
	r.lastPollBeat[unitID] = current
	r.mu.Unlock()

	if current <= last {
		return nil
	}

	timed := r.snapshot.eventsInRange(unitID, last, current)
	if len(timed) == 0 {
		return nil
	}
	out := make([]Event, len(timed))
	for i, t := range timed {
		out[i] = t.Event
	}
	return out
}

// Reset clears every unit's poll cursor, so the next PollInto call for
// each unit returns every event at or before the current beat again.
func (r *SnapshotReader) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastPollBeat = make(map[uint64]float64)
}
