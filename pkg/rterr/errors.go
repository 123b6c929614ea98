// Package rterr defines the engine-wide error taxonomy (spec §7). Every
// control-thread operation that can fail returns a *rterr.Error; nothing
// on the audio thread returns or raises an error — the render callback's
// failure mode is silence, never a propagated error (see pkg/engine).
package rterr

import "fmt"

// Kind classifies the failure so callers can branch without string
// matching.
type Kind int

const (
	// KindInvalidConfig: requested sample format, channel count, or bit
	// depth unsupported.
	KindInvalidConfig Kind = iota
	// KindInvalidDevice: audio device not found or not openable.
	KindInvalidDevice
	// KindGraphError: node-not-found, port-out-of-range, cycle, invalid
	// master output.
	KindGraphError
	// KindNodeRegistry: unknown node type, missing parameter, invalid
	// parameter.
	KindNodeRegistry
	// KindLufsNotReady: loudness requested before enough samples
	// accumulated.
	KindLufsNotReady
	// KindExport: invalid duration, unsupported format, I/O failure.
	KindExport
	// KindMidi: device not found, unsupported timing format.
	KindMidi
	// KindRecording: out of scope for the core but propagated identically.
	KindRecording
	// KindStreaming: out of scope for the core but propagated identically.
	KindStreaming
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConfig:
		return "invalid_config"
	case KindInvalidDevice:
		return "invalid_device"
	case KindGraphError:
		return "graph_error"
	case KindNodeRegistry:
		return "node_registry"
	case KindLufsNotReady:
		return "lufs_not_ready"
	case KindExport:
		return "export"
	case KindMidi:
		return "midi"
	case KindRecording:
		return "recording"
	case KindStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every fallible
// control-thread operation in the engine.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "graph.ConnectPorts"
	Err  error  // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an *Error whose Err is a plain error carrying msg.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf("%s", msg)}
}

// Wrap creates an *Error wrapping an existing error.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is an *Error of the given kind, so callers can
// write `if rterr.Is(err, rterr.KindLufsNotReady)` instead of a type
// assertion.
func Is(err error, kind Kind) bool {
	var e *Error
	if !asError(err, &e) {
		return false
	}
	return e.Kind == kind
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
