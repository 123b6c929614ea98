package atomicx

import "sync/atomic"

// RingBuffer is a single-producer single-consumer lock-free circular
// buffer of float32 samples, sized to the next power of two so index
// wrapping is a mask instead of a modulo. It is the analysis tap between
// the render callback and the metering thread (spec §4.4 step 4): the
// audio thread writes, the metering thread drains, and neither blocks.
type RingBuffer struct {
	data     []float32
	mask     uint32
	readPos  atomic.Uint64
	writePos atomic.Uint64
	dropped  atomic.Uint64
}

// NewRingBuffer creates a ring buffer that holds at least capacity
// samples.
func NewRingBuffer(capacity int) *RingBuffer {
	size := nextPowerOf2(uint32(capacity))
	return &RingBuffer{
		data: make([]float32, size),
		mask: size - 1,
	}
}

// Write appends samples, overwriting the oldest unread data and counting
// a drop if the consumer has fallen behind. It never blocks and never
// allocates, so it is safe to call from the audio thread.
func (r *RingBuffer) Write(samples []float32) {
	if len(samples) == 0 {
		return
	}
	size := uint64(len(r.data))
	writePos := r.writePos.Load()
	readPos := r.readPos.Load()

	if uint64(len(samples)) >= size {
		skip := uint64(len(samples)) - size + 1
		r.dropped.Add(skip)
		samples = samples[skip:]
	}

	used := writePos - readPos
	capacity := size
	if used+uint64(len(samples)) > capacity {
		overflow := used + uint64(len(samples)) - capacity
		r.readPos.Store(readPos + overflow)
		r.dropped.Add(overflow)
	}

	for i, s := range samples {
		idx := uint32(writePos+uint64(i)) & r.mask
		r.data[idx] = s
	}
	r.writePos.Store(writePos + uint64(len(samples)))
}

// Read drains up to len(out) samples into out, returning the number
// actually read. It never blocks.
func (r *RingBuffer) Read(out []float32) int {
	writePos := r.writePos.Load()
	readPos := r.readPos.Load()

	available := writePos - readPos
	n := uint64(len(out))
	if n > available {
		n = available
	}
	for i := uint64(0); i < n; i++ {
		idx := uint32(readPos+i) & r.mask
		out[i] = r.data[idx]
	}
	r.readPos.Store(readPos + n)
	return int(n)
}

// Dropped returns the total number of samples overwritten before being
// read, i.e. how much the consumer has fallen behind.
func (r *RingBuffer) Dropped() uint64 {
	return r.dropped.Load()
}

// Available reports how many unread samples are currently buffered.
func (r *RingBuffer) Available() int {
	return int(r.writePos.Load() - r.readPos.Load())
}

func nextPowerOf2(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}
