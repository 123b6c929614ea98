package export

import "github.com/justyntemme/rtaudio/pkg/midi"

// Context isolates offline render state from the live engine: its own
// timeline (not the live transport) and its own MIDI snapshot/reader
// pair (not the live registry), so an export can run concurrently with
// continued live use of the engine without either interfering with
// the other (spec §4.8).
type Context struct {
	Timeline *Timeline
	Snapshot *midi.Snapshot
	Reader   *midi.SnapshotReader
}

// NewContext builds a Context around timeline and an offline MIDI
// snapshot (already Finalize'd by the caller).
func NewContext(timeline *Timeline, snapshot *midi.Snapshot) *Context {
	return &Context{
		Timeline: timeline,
		Snapshot: snapshot,
		Reader:   midi.NewSnapshotReader(snapshot, timeline),
	}
}
