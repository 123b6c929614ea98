package atomicx

import "testing"

func TestRingBufferWriteRead(t *testing.T) {
	r := NewRingBuffer(16)
	in := []float32{1, 2, 3, 4}
	r.Write(in)

	out := make([]float32, 4)
	n := r.Read(out)
	if n != 4 {
		t.Fatalf("expected 4 samples read, got %d", n)
	}
	for i, v := range in {
		if out[i] != v {
			t.Errorf("sample %d: expected %v, got %v", i, v, out[i])
		}
	}
}

func TestRingBufferPartialRead(t *testing.T) {
	r := NewRingBuffer(8)
	r.Write([]float32{1, 2})

	out := make([]float32, 5)
	n := r.Read(out)
	if n != 2 {
		t.Fatalf("expected 2 samples, got %d", n)
	}
}

func TestRingBufferOverflowDrops(t *testing.T) {
	r := NewRingBuffer(4)
	r.Write([]float32{1, 2, 3, 4, 5, 6})
	if r.Dropped() == 0 {
		t.Errorf("expected dropped samples to be tracked on overflow")
	}
}

func TestShardedMapBasics(t *testing.T) {
	sm := NewShardedMap[int]()
	sm.Set(42, 7)
	v, ok := sm.Get(42)
	if !ok || v != 7 {
		t.Fatalf("expected (7, true), got (%d, %v)", v, ok)
	}
	if !sm.Has(42) {
		t.Errorf("expected key 42 present")
	}
	removed, ok := sm.Delete(42)
	if !ok || removed != 7 {
		t.Errorf("expected removed value 7, got %d", removed)
	}
	if sm.Has(42) {
		t.Errorf("expected key 42 gone after delete")
	}
}

func TestTryMutex(t *testing.T) {
	var m TryMutex
	if !m.TryLock() {
		t.Fatal("expected first TryLock to succeed")
	}
	if m.TryLock() {
		t.Fatal("expected second TryLock to fail while held")
	}
	m.Unlock()
	if !m.TryLock() {
		t.Fatal("expected TryLock to succeed after unlock")
	}
}
