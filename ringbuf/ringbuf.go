// Package ringbuf implements the single-producer/single-consumer ring
// buffers that connect the track engine to the flux pump (spec §5):
// read_data, read_bc, write_data and write_bc. Capacity is always a
// power of two so index arithmetic is a mask, never a modulo.
//
// The producer and consumer may run on different goroutines (or, on
// the original hardware, a main loop and a timer/DMA ISR); only the
// prod/cons counters are shared, and they are published with
// store-release / observed with load-acquire semantics via
// sync/atomic, per spec §9 ("no locks").
package ringbuf

import "sync/atomic"

// Ring is a byte-oriented SPSC ring buffer of power-of-two capacity.
type Ring struct {
	buf  []byte
	mask uint32
	prod atomic.Uint32
	cons atomic.Uint32
}

// New creates a ring buffer with the given capacity, rounded up to the
// next power of two.
func New(capacity int) *Ring {
	cap2 := nextPow2(capacity)
	return &Ring{
		buf:  make([]byte, cap2),
		mask: uint32(cap2 - 1),
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Len returns the number of bytes the consumer has not yet consumed.
func (r *Ring) Len() int {
	return int(r.prod.Load() - r.cons.Load())
}

// Space returns the number of free bytes the producer may write.
func (r *Ring) Space() int {
	return len(r.buf) - r.Len()
}

// Reset abandons any in-flight data and returns both counters to zero,
// matching the "track change resets prod=cons=0" rule of §5.
func (r *Ring) Reset() {
	r.prod.Store(0)
	r.cons.Store(0)
}

// Write appends data to the ring, returning the number of bytes
// actually written (bounded by Space()). The caller must check the
// return value before assuming all of data was written — the engine
// never blocks (spec §5: "make bounded progress ... then return").
func (r *Ring) Write(data []byte) int {
	n := len(data)
	if s := r.Space(); n > s {
		n = s
	}
	if n == 0 {
		return 0
	}
	prod := r.prod.Load()
	for i := 0; i < n; i++ {
		r.buf[(prod+uint32(i))&r.mask] = data[i]
	}
	// Release: publish the new prod only after the buffer writes land.
	r.prod.Store(prod + uint32(n))
	return n
}

// Read copies up to len(dst) unconsumed bytes into dst and advances
// the consumer counter, returning the number of bytes copied.
func (r *Ring) Read(dst []byte) int {
	n := len(dst)
	if l := r.Len(); n > l {
		n = l
	}
	if n == 0 {
		return 0
	}
	// Acquire: read prod before touching buffer contents it guards.
	cons := r.cons.Load()
	for i := 0; i < n; i++ {
		dst[i] = r.buf[(cons+uint32(i))&r.mask]
	}
	r.cons.Store(cons + uint32(n))
	return n
}

// WriteDescriptor marks a write-window boundary: the bitcells from
// StartTick onward, up to (but excluding) the producer position
// BCEnd, belong to one in-flight host write. See spec §3 ("a pair of
// write descriptors") and §5 ("write descriptors mark write-window
// boundaries").
type WriteDescriptor struct {
	StartTick uint32
	BCEnd     uint32
}

// WriteDescQueueSize is the depth of the small SPSC descriptor array;
// sized generously since descriptors are cheap and rarely queue up
// more than one or two deep in practice.
const WriteDescQueueSize = 16

// WriteDescQueue is the small SPSC array of write descriptors shared
// between the flux pump (producer, advances WrBC) and the engine
// (consumer, advances WrCons).
type WriteDescQueue struct {
	entries [WriteDescQueueSize]WriteDescriptor
	wrBC    atomic.Uint32
	wrCons  atomic.Uint32
}

// Push is called by the pump when a new write-window boundary is
// observed. Returns false if the queue is full (the pump must then
// drop or coalesce, since the engine never blocks).
func (q *WriteDescQueue) Push(d WriteDescriptor) bool {
	bc := q.wrBC.Load()
	cons := q.wrCons.Load()
	if bc-cons >= WriteDescQueueSize {
		return false
	}
	q.entries[bc%WriteDescQueueSize] = d
	q.wrBC.Store(bc + 1)
	return true
}

// Pending reports how many descriptors are queued but not yet
// consumed by the engine.
func (q *WriteDescQueue) Pending() int {
	return int(q.wrBC.Load() - q.wrCons.Load())
}

// Pop is called by the engine to consume the oldest unconsumed
// descriptor. ok is false if none are pending.
func (q *WriteDescQueue) Pop() (d WriteDescriptor, ok bool) {
	cons := q.wrCons.Load()
	bc := q.wrBC.Load()
	if cons == bc {
		return WriteDescriptor{}, false
	}
	d = q.entries[cons%WriteDescQueueSize]
	q.wrCons.Store(cons + 1)
	return d, true
}

// Reset zeroes both counters, abandoning any queued descriptors — used
// on track change alongside Ring.Reset.
func (q *WriteDescQueue) Reset() {
	q.wrBC.Store(0)
	q.wrCons.Store(0)
}
