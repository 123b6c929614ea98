package midi

import "testing"

func TestSnapshotEventsInRangeIsHalfOpen(t *testing.T) {
	s := NewSnapshot()
	const unit = 1
	s.Add(unit, 0, NoteOnEvent{NoteNumber: 60, Velocity: 100})
	s.Add(unit, 1, NoteOnEvent{NoteNumber: 62, Velocity: 100})
	s.Add(unit, 2, NoteOnEvent{NoteNumber: 64, Velocity: 100})
	s.Finalize()

	got := s.eventsInRange(unit, 0, 1)
	if len(got) != 1 || got[0].Beat != 1 {
		t.Fatalf("expected only the beat-1 event in (0,1], got %+v", got)
	}

	got = s.eventsInRange(unit, -1, 0)
	if len(got) != 1 || got[0].Beat != 0 {
		t.Fatalf("expected only the beat-0 event in (-1,0], got %+v", got)
	}
}

func TestSnapshotFinalizeIsStableAndIdempotent(t *testing.T) {
	s := NewSnapshot()
	const unit = 1
	s.Add(unit, 2, NoteOnEvent{NoteNumber: 1})
	s.Add(unit, 0, NoteOnEvent{NoteNumber: 2})
	s.Add(unit, 1, NoteOnEvent{NoteNumber: 3})
	s.Finalize()
	s.Finalize()

	seq := s.perUnit[unit]
	for i := 1; i < len(seq); i++ {
		if seq[i-1].Beat > seq[i].Beat {
			t.Fatalf("sequence not sorted after double Finalize: %+v", seq)
		}
	}
}

func TestSnapshotEventsInRangeUnknownUnit(t *testing.T) {
	s := NewSnapshot()
	s.Finalize()
	if got := s.eventsInRange(99, 0, 10); got != nil {
		t.Errorf("expected nil for unknown unit, got %+v", got)
	}
}
