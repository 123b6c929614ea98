package midi

import "testing"

type fakeBeatSource struct {
	beat float64
}

func (f *fakeBeatSource) CurrentBeat() float64 { return f.beat }

func TestSnapshotReaderFirstPollCapturesBeatZeroEvents(t *testing.T) {
	snap := NewSnapshot()
	const unit = 7
	snap.Add(unit, 0, NoteOnEvent{NoteNumber: 60, Velocity: 100})
	snap.Finalize()

	source := &fakeBeatSource{beat: 0}
	reader := NewSnapshotReader(snap, source)

	events := reader.PollInto(unit)
	if len(events) != 1 {
		t.Fatalf("expected the beat-0 event on first poll, got %d events", len(events))
	}
}

func TestSnapshotReaderOnlyReturnsNewlyElapsedEvents(t *testing.T) {
	snap := NewSnapshot()
	const unit = 1
	snap.Add(unit, 0, NoteOnEvent{NoteNumber: 60})
	snap.Add(unit, 1, NoteOnEvent{NoteNumber: 62})
	snap.Add(unit, 2, NoteOnEvent{NoteNumber: 64})
	snap.Finalize()

	source := &fakeBeatSource{beat: 0}
	reader := NewSnapshotReader(snap, source)

	first := reader.PollInto(unit)
	if len(first) != 1 {
		t.Fatalf("expected 1 event at beat 0, got %d", len(first))
	}

	source.beat = 1
	second := reader.PollInto(unit)
	if len(second) != 1 {
		t.Fatalf("expected 1 newly-elapsed event at beat 1, got %d", len(second))
	}

	source.beat = 1
	third := reader.PollInto(unit)
	if len(third) != 0 {
		t.Fatalf("expected 0 events when the timeline hasn't advanced, got %d", len(third))
	}

	source.beat = 5
	fourth := reader.PollInto(unit)
	if len(fourth) != 1 {
		t.Fatalf("expected the remaining beat-2 event after jumping to beat 5, got %d", len(fourth))
	}
}

func TestSnapshotReaderResetRewindsCursor(t *testing.T) {
	snap := NewSnapshot()
	const unit = 1
	snap.Add(unit, 0, NoteOnEvent{NoteNumber: 60})
	snap.Finalize()

	source := &fakeBeatSource{beat: 0}
	reader := NewSnapshotReader(snap, source)
	reader.PollInto(unit)

	reader.Reset()
	events := reader.PollInto(unit)
	if len(events) != 1 {
		t.Fatalf("expected Reset to rewind the cursor so beat-0 event is returned again, got %d", len(events))
	}
}

func TestSnapshotReaderIndependentUnitCursors(t *testing.T) {
	snap := NewSnapshot()
	snap.Add(1, 0, NoteOnEvent{NoteNumber: 60})
	snap.Add(2, 0, NoteOnEvent{NoteNumber: 61})
	snap.Finalize()

	source := &fakeBeatSource{beat: 0}
	reader := NewSnapshotReader(snap, source)

	if got := reader.PollInto(1); len(got) != 1 {
		t.Fatalf("unit 1 expected 1 event, got %d", len(got))
	}
	if got := reader.PollInto(2); len(got) != 1 {
		t.Fatalf("unit 2 expected 1 event even though unit 1 already polled, got %d", len(got))
	}
}
