package atomicx

import "sync"

const defaultShardCount = 16

// ShardedMap is a concurrent map keyed by uint64, sharded to reduce
// contention between control-thread writers and an audio-thread reader
// that only ever touches its own key. Grounded on the DashMap-backed
// MIDI registry in the original source; Go's stdlib has no sharded map,
// so each shard is a plain mutex-protected map kept small enough that
// lock hold times stay in the "very short critical section" range the
// spec requires (§4.6).
type ShardedMap[V any] struct {
	shards []shard[V]
}

type shard[V any] struct {
	mu sync.Mutex
	m  map[uint64]V
}

// NewShardedMap creates a sharded map with the default shard count.
func NewShardedMap[V any]() *ShardedMap[V] {
	return NewShardedMapN[V](defaultShardCount)
}

// NewShardedMapN creates a sharded map with an explicit shard count.
func NewShardedMapN[V any](shardCount int) *ShardedMap[V] {
	if shardCount < 1 {
		shardCount = 1
	}
	sm := &ShardedMap[V]{shards: make([]shard[V], shardCount)}
	for i := range sm.shards {
		sm.shards[i].m = make(map[uint64]V)
	}
	return sm
}

func (sm *ShardedMap[V]) shardFor(key uint64) *shard[V] {
	return &sm.shards[key%uint64(len(sm.shards))]
}

// Get returns the value for key and whether it was present.
func (sm *ShardedMap[V]) Get(key uint64) (V, bool) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

// Set stores value under key.
func (sm *ShardedMap[V]) Set(key uint64, value V) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

// Delete removes key and returns the value that was stored, if any.
func (sm *ShardedMap[V]) Delete(key uint64) (V, bool) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if ok {
		delete(s.m, key)
	}
	return v, ok
}

// Has reports whether key is present.
func (sm *ShardedMap[V]) Has(key uint64) bool {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[key]
	return ok
}

// Update atomically applies fn to the current value for key (zero value
// if absent) and stores the result.
func (sm *ShardedMap[V]) Update(key uint64, fn func(V, bool) V) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[key]
	s.m[key] = fn(cur, ok)
}

// Take atomically replaces the value at key with reset(cur) and
// returns the value that was stored beforehand. It is a no-op and
// returns ok=false if key is absent, so callers never insert an entry
// just by polling it.
func (sm *ShardedMap[V]) Take(key uint64, reset func(V) V) (V, bool) {
	s := sm.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.m[key]
	if !ok {
		var zero V
		return zero, false
	}
	s.m[key] = reset(cur)
	return cur, true
}

// CountWhere returns the number of entries for which pred returns true.
func (sm *ShardedMap[V]) CountWhere(pred func(V) bool) int {
	total := 0
	for i := range sm.shards {
		sm.shards[i].mu.Lock()
		for _, v := range sm.shards[i].m {
			if pred(v) {
				total++
			}
		}
		sm.shards[i].mu.Unlock()
	}
	return total
}

// Len returns the total number of entries across all shards.
func (sm *ShardedMap[V]) Len() int {
	total := 0
	for i := range sm.shards {
		sm.shards[i].mu.Lock()
		total += len(sm.shards[i].m)
		sm.shards[i].mu.Unlock()
	}
	return total
}

// Clear removes all entries.
func (sm *ShardedMap[V]) Clear() {
	for i := range sm.shards {
		sm.shards[i].mu.Lock()
		sm.shards[i].m = make(map[uint64]V)
		sm.shards[i].mu.Unlock()
	}
}
