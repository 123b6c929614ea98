package rterr

import (
	"errors"
	"testing"
)

func TestErrorString(t *testing.T) {
	err := New(KindGraphError, "graph.ConnectPorts", "node not found")
	if err.Error() == "" {
		t.Fatal("expected non-empty error string")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap(KindExport, "export.Render", nil) != nil {
		t.Fatal("expected Wrap(nil) to return nil")
	}
}

func TestIsKind(t *testing.T) {
	err := New(KindLufsNotReady, "metering.Loudness", "not enough samples")
	if !Is(err, KindLufsNotReady) {
		t.Errorf("expected Is to match KindLufsNotReady")
	}
	if Is(err, KindExport) {
		t.Errorf("expected Is to not match KindExport")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindMidi, "midi.Connect", cause)
	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find wrapped cause")
	}
}
