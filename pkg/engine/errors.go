package engine

import "github.com/justyntemme/rtaudio/pkg/rterr"

// Kind and Error are the facade's error taxonomy (spec §7). The engine
// package re-exports pkg/rterr's types rather than redefining them:
// every collaborator package (graph, pdc, midi, export, metering,
// registry, param) already returns *rterr.Error, and aliasing here
// keeps Engine's public surface in the same taxonomy without a second
// parallel error type or a conversion step at the facade boundary.
type Kind = rterr.Kind

// Error is the facade's error type, identical to rterr.Error.
type Error = rterr.Error

const (
	KindInvalidConfig = rterr.KindInvalidConfig
	KindInvalidDevice = rterr.KindInvalidDevice
	KindGraphError    = rterr.KindGraphError
	KindNodeRegistry  = rterr.KindNodeRegistry
	KindLufsNotReady  = rterr.KindLufsNotReady
	KindExport        = rterr.KindExport
	KindMidi          = rterr.KindMidi
	KindRecording     = rterr.KindRecording
	KindStreaming     = rterr.KindStreaming
)

// New and Wrap mirror pkg/rterr's constructors so callers working
// exclusively against pkg/engine never need to import pkg/rterr
// directly.
func New(kind Kind, op, msg string) *Error { return rterr.New(kind, op, msg) }

func Wrap(kind Kind, op string, err error) *Error { return rterr.Wrap(kind, op, err) }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool { return rterr.Is(err, kind) }
