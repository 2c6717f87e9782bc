// Package ring provides the fixed-capacity byte ring used as a console input
// source. It has the shape of a DMA receive buffer: one producer, one
// consumer, non-blocking on both sides, dropping input when saturated.
package ring

import "sync"

// Ring is a bounded FIFO of bytes. Put and PollByte may be called from two
// different goroutines.
type Ring struct {
	mu   sync.Mutex
	buf  []byte
	head int
	size int
	wake chan struct{}
}

// New creates a ring holding up to capacity bytes.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{buf: make([]byte, capacity), wake: make(chan struct{}, 1)}
}

// Put appends one byte, reporting false when the ring is full. A full ring
// drops input rather than blocking the producer.
func (r *Ring) Put(b byte) bool {
	r.mu.Lock()
	if r.size == len(r.buf) {
		r.mu.Unlock()
		return false
	}
	r.buf[(r.head+r.size)%len(r.buf)] = b
	r.size++
	r.mu.Unlock()

	select {
	case r.wake <- struct{}{}:
	default:
	}
	return true
}

// Write feeds p into the ring, dropping any bytes that do not fit. It always
// reports len(p) so producers piping from an io source keep running.
func (r *Ring) Write(p []byte) (int, error) {
	for _, b := range p {
		r.Put(b)
	}
	return len(p), nil
}

// PollByte returns the oldest buffered byte. It implements console.Source.
func (r *Ring) PollByte() (byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.size == 0 {
		return 0, false
	}
	b := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return b, true
}

// Len returns the number of buffered bytes.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Wakeup returns a channel that receives a token after each successful Put,
// so consumers can sleep between bursts instead of spinning.
func (r *Ring) Wakeup() <-chan struct{} {
	return r.wake
}
