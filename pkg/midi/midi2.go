package midi

// VelocityToHiRes converts a 7-bit MIDI 1.0 velocity (0-127) to a 16-bit
// MIDI 2.0 velocity, deterministically and losslessly round-trippable
// with HiResToVelocity (spec §4.6): v7 == 0 maps to v16 == 0; otherwise
// v16 = (v7*65535 + 63) / 127.
func VelocityToHiRes(v7 uint8) uint16 {
	if v7 == 0 {
		return 0
	}
	return uint16((uint32(v7)*65535 + 63) / 127)
}

// HiResToVelocity converts a 16-bit MIDI 2.0 velocity back to the 7-bit
// form, the inverse of VelocityToHiRes.
func HiResToVelocity(v16 uint16) uint8 {
	if v16 == 0 {
		return 0
	}
	return uint8((uint32(v16)*127 + 32767) / 65535)
}

// NoteOnHiRes is the MIDI 2.0 form of a note-on: same frame offset as
// its 7-bit counterpart, 16-bit velocity, with optional per-note
// attribute data the 7-bit protocol has no room for.
type NoteOnHiRes struct {
	BaseEvent
	NoteNumber uint8
	Velocity16 uint16
}

// Type implements Event.
func (e NoteOnHiRes) Type() EventType { return EventTypeNoteOn }

// String implements Event.
func (e NoteOnHiRes) String() string {
	return "NoteOnHiRes"
}

// ToNoteOnHiRes upconverts a 7-bit NoteOnEvent.
func ToNoteOnHiRes(e NoteOnEvent) NoteOnHiRes {
	return NoteOnHiRes{BaseEvent: e.BaseEvent, NoteNumber: e.NoteNumber, Velocity16: VelocityToHiRes(e.Velocity)}
}

// ToNoteOn downconverts a MIDI 2.0 note-on to its 7-bit form.
func ToNoteOn(e NoteOnHiRes) NoteOnEvent {
	return NoteOnEvent{BaseEvent: e.BaseEvent, NoteNumber: e.NoteNumber, Velocity: HiResToVelocity(e.Velocity16)}
}

// PerNotePitchBendEvent is a MIDI 2.0 per-note pitch bend. It has no
// 7-bit representation — a channel-wide PitchBendEvent is the closest
// analogue, but converting loses the per-note distinction, so To7Bit
// reports that no 7-bit form exists rather than converting silently.
type PerNotePitchBendEvent struct {
	BaseEvent
	NoteNumber uint8
	Value32    uint32 // 0 = center-8388608 convention: 0x80000000 is center
}

// Type implements Event.
func (e PerNotePitchBendEvent) Type() EventType { return EventTypePitchBend }

// String implements Event.
func (e PerNotePitchBendEvent) String() string { return "PerNotePitchBend" }

// To7Bit reports that per-note pitch bend has no 7-bit representation
// (spec §4.6): "per-note pitch bend and per-note expressions have no
// 7-bit representation; conversion returns none."
func (e PerNotePitchBendEvent) To7Bit() (PitchBendEvent, bool) {
	return PitchBendEvent{}, false
}

// PerNoteExpressionKind distinguishes the per-note expression
// dimensions MIDI 2.0 carries that 7-bit MIDI cannot.
type PerNoteExpressionKind uint8

const (
	PerNotePressure PerNoteExpressionKind = iota
	PerNoteSlide
	PerNoteTimbre
)

// PerNoteExpressionEvent is a MIDI 2.0 per-note expression value. Like
// per-note pitch bend, it has no 7-bit representation.
type PerNoteExpressionEvent struct {
	BaseEvent
	NoteNumber uint8
	Kind       PerNoteExpressionKind
	Value32    uint32
}

// Type implements Event.
func (e PerNoteExpressionEvent) Type() EventType { return EventTypeChannelPressure }

// String implements Event.
func (e PerNoteExpressionEvent) String() string { return "PerNoteExpression" }

// To7Bit reports that per-note expression has no 7-bit representation.
func (e PerNoteExpressionEvent) To7Bit() (ChannelPressureEvent, bool) {
	return ChannelPressureEvent{}, false
}
