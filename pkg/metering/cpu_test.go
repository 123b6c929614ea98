package metering

import (
	"testing"
	"time"
)

func TestCPUMeterRecordsLoad(t *testing.T) {
	m := NewCPUMeter(48000)
	stop := m.Start(480) // 10ms budget at 48kHz
	time.Sleep(time.Millisecond)
	stop()

	if m.AverageBlockTime() <= 0 {
		t.Errorf("expected nonzero average block time after recording")
	}
	if m.LastLoad() <= 0 {
		t.Errorf("expected nonzero last load after recording")
	}
}

func TestCPUMeterDisabledIsNoop(t *testing.T) {
	m := NewCPUMeter(48000)
	m.SetEnabled(false)
	stop := m.Start(480)
	time.Sleep(time.Millisecond)
	stop()

	if m.AverageBlockTime() != 0 {
		t.Errorf("expected disabled meter to record nothing, got %v", m.AverageBlockTime())
	}
}

func TestCPUMeterReset(t *testing.T) {
	m := NewCPUMeter(48000)
	stop := m.Start(480)
	stop()
	m.Reset()
	if m.AverageBlockTime() != 0 || m.MaxBlockTime() != 0 {
		t.Errorf("expected Reset to clear all timing state")
	}
}
