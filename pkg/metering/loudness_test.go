package metering

import (
	"math"
	"testing"

	"github.com/justyntemme/rtaudio/pkg/rterr"
)

func TestLoudnessMeterNotReadyBeforeFirstBlock(t *testing.T) {
	m := NewLoudnessMeter(48000, 2)
	_, err := m.IntegratedLUFS()
	if !rterr.Is(err, rterr.KindLufsNotReady) {
		t.Fatalf("expected KindLufsNotReady before any gating block completes, got %v", err)
	}
}

func TestLoudnessMeterBecomesReadyAfterOneBlock(t *testing.T) {
	sampleRate := 48000.0
	m := NewLoudnessMeter(sampleRate, 2)

	n := int(0.4 * sampleRate)
	sine := make([]float32, n)
	for i := range sine {
		sine[i] = float32(0.2 * math.Sin(2*math.Pi*1000*float64(i)/sampleRate))
	}
	m.Process([][]float32{sine, sine})

	lufs, err := m.IntegratedLUFS()
	if err != nil {
		t.Fatalf("expected IntegratedLUFS to be ready after a full gating block, got err=%v", err)
	}
	if math.IsInf(lufs, 0) || math.IsNaN(lufs) {
		t.Fatalf("expected a finite LUFS value, got %v", lufs)
	}
}

func TestLoudnessMeterTruePeakTracksAmplitude(t *testing.T) {
	m := NewLoudnessMeter(48000, 2)
	block := []float32{0.1, 0.9, -0.95, 0.2}
	m.Process([][]float32{block, block})
	db := m.TruePeakDBTP()
	if db > 0 || db < -2 {
		t.Fatalf("expected true peak near 0 dBTP for a 0.95 peak sample, got %v", db)
	}
}

func TestLoudnessMeterReset(t *testing.T) {
	sampleRate := 48000.0
	m := NewLoudnessMeter(sampleRate, 2)
	n := int(0.4 * sampleRate)
	sine := make([]float32, n)
	for i := range sine {
		sine[i] = 0.3
	}
	m.Process([][]float32{sine, sine})
	m.Reset()

	_, err := m.IntegratedLUFS()
	if !rterr.Is(err, rterr.KindLufsNotReady) {
		t.Fatalf("expected Reset to clear completed gating blocks, got err=%v", err)
	}
}
