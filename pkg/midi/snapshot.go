package midi

import "sort"

// TimedEvent pairs an Event with the beat position it fires at, for the
// offline/snapshot delivery path (spec §4.6).
type TimedEvent struct {
	Beat  float64
	Event Event
}

// Snapshot holds per-unit sequences of (beat, Event), sorted by beat,
// for deterministic offline rendering — the MIDI analogue of a
// pre-baked automation lane.
type Snapshot struct {
	perUnit map[uint64][]TimedEvent
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{perUnit: make(map[uint64][]TimedEvent)}
}

// Add appends an event at beat for unitID. Add does not sort; events
// are sorted by beat (stable on insertion order for ties) when
// Finalize is called.
func (s *Snapshot) Add(unitID uint64, beat float64, event Event) {
	s.perUnit[unitID] = append(s.perUnit[unitID], TimedEvent{Beat: beat, Event: event})
}

// Finalize sorts every unit's event sequence by beat. Idempotent; safe
// to call more than once (e.g. after further Add calls).
func (s *Snapshot) Finalize() {
	for id := range s.perUnit {
		seq := s.perUnit[id]
		sort.SliceStable(seq, func(i, j int) bool {
			return seq[i].Beat < seq[j].Beat
		})
		s.perUnit[id] = seq
	}
}

// eventsInRange returns events for unitID with beat in (lo, hi], in
// sorted order. Requires Finalize to have been called since the last
// Add.
func (s *Snapshot) eventsInRange(unitID uint64, lo, hi float64) []TimedEvent {
	seq := s.perUnit[unitID]
	if len(seq) == 0 {
		return nil
	}
	start := sort.Search(len(seq), func(i int) bool { return seq[i].Beat > lo })
	end := sort.Search(len(seq), func(i int) bool { return seq[i].Beat > hi })
	if start >= end {
		return nil
	}
	return seq[start:end]
}
