// Package mixer moves synthesized buffers to the audio output: a
// bounded hand-off queue with a documented drop policy and a device
// abstraction the real-time callback side consumes from.
package mixer

import (
	"sync"

	"github.com/ayusman/gesturebeats/internal/synth"
)

// DefaultQueueSize is the default playback queue depth in buffers.
const DefaultQueueSize = 8

// Queue is the bounded producer/consumer hand-off between synthesis
// and audio output.
//
// Drop policy: Publish never blocks; on overflow the oldest buffer is
// evicted to admit the newest, favoring freshness. Next never blocks;
// on underflow it substitutes silence.
type Queue struct {
	mu       sync.Mutex
	buffers  []*synth.Buffer
	capacity int
	dropped  uint64
}

// NewQueue creates a Queue with the given capacity. Non-positive
// capacities fall back to DefaultQueueSize.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}
	return &Queue{
		buffers:  make([]*synth.Buffer, 0, capacity),
		capacity: capacity,
	}
}

// Publish enqueues a buffer, silently evicting the oldest entry when
// the queue is full.
func (q *Queue) Publish(b *synth.Buffer) {
	if b == nil {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.buffers) == q.capacity {
		copy(q.buffers, q.buffers[1:])
		q.buffers = q.buffers[:q.capacity-1]
		q.dropped++
	}
	q.buffers = append(q.buffers, b)
}

// Next dequeues the oldest buffer, or a silence buffer when empty.
func (q *Queue) Next() *synth.Buffer {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.buffers) == 0 {
		return synth.Silence()
	}
	b := q.buffers[0]
	copy(q.buffers, q.buffers[1:])
	q.buffers = q.buffers[:len(q.buffers)-1]
	return b
}

// Drain removes and returns all queued buffers in order.
func (q *Queue) Drain() []*synth.Buffer {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.buffers
	q.buffers = make([]*synth.Buffer, 0, q.capacity)
	return out
}

// Len returns the number of queued buffers.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buffers)
}

// Dropped returns how many buffers have been evicted under
// backpressure.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
