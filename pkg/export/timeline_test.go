package export

import "testing"

func TestTimelineAdvanceTracksTempo(t *testing.T) {
	tl := NewTimeline(TimelineConfig{
		TempoBPM:   120,
		SampleRate: 48000,
	})
	// 120 BPM = 2 beats/sec = 1 beat per 24000 samples.
	tl.Advance(24000)
	if got := tl.CurrentBeat(); got < 0.99 || got > 1.01 {
		t.Fatalf("expected ~1 beat after 24000 samples at 120 BPM/48kHz, got %v", got)
	}
}

func TestTimelineLoopWraps(t *testing.T) {
	tl := NewTimeline(TimelineConfig{
		TempoBPM:    120,
		SampleRate:  48000,
		LoopStart:   0,
		LoopEnd:     2,
		LoopEnabled: true,
	})
	// 3 beats worth of samples should wrap back into [0,2).
	tl.Advance(72000)
	got := tl.CurrentBeat()
	if got < 0 || got >= 2 {
		t.Fatalf("expected wrapped beat in [0,2), got %v", got)
	}
}

func TestTimelineResetRewinds(t *testing.T) {
	tl := NewTimeline(TimelineConfig{TempoBPM: 120, SampleRate: 48000})
	tl.Advance(48000)
	tl.Reset(3)
	if got := tl.CurrentBeat(); got != 3 {
		t.Fatalf("expected reset to 3, got %v", got)
	}
}

func TestTimelineIsPlayingAlwaysTrue(t *testing.T) {
	tl := NewTimeline(TimelineConfig{TempoBPM: 120, SampleRate: 48000})
	if !tl.IsPlaying() {
		t.Errorf("expected export timeline to always report playing")
	}
}
