package atomicx

import "sync/atomic"

// TryMutex is a non-blocking mutex: TryLock either acquires the lock and
// returns true, or returns false immediately. The audio thread uses this
// for anything behind a mutex it must never wait on (e.g. the LUFS
// accumulator, spec §5) — on contention it just skips the update for
// that block rather than stalling.
type TryMutex struct {
	locked atomic.Bool
}

// TryLock attempts to acquire the lock without blocking.
func (m *TryMutex) TryLock() bool {
	return m.locked.CompareAndSwap(false, true)
}

// Unlock releases the lock.
func (m *TryMutex) Unlock() {
	m.locked.Store(false)
}
