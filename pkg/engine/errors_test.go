package engine

import (
	"errors"
	"testing"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

func TestEngineErrorAliasesRterr(t *testing.T) {
	err := New(KindExport, "engine.Export", "bad duration")
	var target *rterr.Error
	if !errors.As(err, &target) {
		t.Fatalf("expected engine.Error to be assignable to *rterr.Error")
	}
	if !Is(err, KindExport) {
		t.Errorf("expected Is to match KindExport")
	}
}

func TestWrapNilReturnsNil(t *testing.T) {
	if Wrap(KindMidi, "engine.MIDI", nil) != nil {
		t.Errorf("expected Wrap(nil) to return nil")
	}
}
