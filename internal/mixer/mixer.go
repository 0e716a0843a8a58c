package mixer

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/gesturebeats/internal/synth"
)

// Mixer owns the playback queue and the goroutine that feeds the
// output device at the block rate. Publish is safe to call from the
// synthesis side at any time.
type Mixer struct {
	queue  *Queue
	device OutputDevice

	mu      sync.Mutex
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

// New creates a Mixer over the given device. A nil device degrades to
// NullDevice.
func New(device OutputDevice, queueSize int) *Mixer {
	if device == nil {
		device = NewNullDevice()
	}
	return &Mixer{
		queue:  NewQueue(queueSize),
		device: device,
	}
}

// Start opens the output device and begins the playback loop. If the
// device fails to start, playback degrades to the null device and the
// mixer still runs: synthesis and recording must keep working when
// only audible output is unavailable.
func (m *Mixer) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}

	if err := m.device.Start(); err != nil {
		log.Printf("Output device unavailable (%v), playback disabled", err)
		m.device = NewNullDevice()
	}

	m.stopCh = make(chan struct{})
	m.started = true
	m.wg.Add(1)
	go m.run()
}

// Publish enqueues a buffer for playback under the queue's drop
// policy.
func (m *Mixer) Publish(b *synth.Buffer) {
	m.queue.Publish(b)
}

// Queue exposes the playback queue, mainly for tests and stats.
func (m *Mixer) Queue() *Queue {
	return m.queue
}

// run feeds the device one buffer per block interval. The device side
// is never allowed to starve: an empty queue yields silence.
func (m *Mixer) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(synth.ToneDuration)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			// Next returns silence on underflow, so a write happens
			// every block regardless of producer pace.
			if err := m.device.Write(m.queue.Next()); err != nil {
				log.Printf("Audio write failed (%v), playback disabled", err)
				m.mu.Lock()
				m.device = NewNullDevice()
				m.mu.Unlock()
			}
		}
	}
}

// Stop halts the playback loop, flushes any queued buffers to the
// device and closes it.
func (m *Mixer) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	close(m.stopCh)
	m.started = false
	m.mu.Unlock()

	m.wg.Wait()

	for _, b := range m.queue.Drain() {
		if err := m.device.Write(b); err != nil {
			log.Printf("Flush write failed: %v", err)
			break
		}
	}
	if err := m.device.Close(); err != nil {
		log.Printf("Error closing output device: %v", err)
	}
}
