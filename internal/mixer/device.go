package mixer

import (
	"sync"

	"github.com/ayusman/gesturebeats/internal/synth"
)

// OutputDevice abstracts the platform audio output. Implementations
// consume pre-rendered buffers at the platform's block rate; Write is
// called from the mixer's playback goroutine and must not block
// indefinitely.
type OutputDevice interface {
	Start() error
	Write(b *synth.Buffer) error
	Close() error
}

// NullDevice discards audio. It stands in when no output device is
// available so synthesis and recording keep functioning with only
// audible playback degraded.
type NullDevice struct{}

// NewNullDevice creates a NullDevice.
func NewNullDevice() *NullDevice { return &NullDevice{} }

// Start is a no-op.
func (*NullDevice) Start() error { return nil }

// Write discards the buffer.
func (*NullDevice) Write(*synth.Buffer) error { return nil }

// Close is a no-op.
func (*NullDevice) Close() error { return nil }

// MockDevice records written buffers for tests.
type MockDevice struct {
	mu       sync.Mutex
	writes   []*synth.Buffer
	startErr error
	writeErr error
	closed   bool
}

// NewMockDevice creates a MockDevice.
func NewMockDevice() *MockDevice { return &MockDevice{} }

// SetStartError makes Start return the given error.
func (m *MockDevice) SetStartError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startErr = err
}

// SetWriteError makes Write return the given error.
func (m *MockDevice) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Start returns the configured start error, if any.
func (m *MockDevice) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startErr
}

// Write records the buffer.
func (m *MockDevice) Write(b *synth.Buffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes = append(m.writes, b)
	return nil
}

// Close marks the device closed.
func (m *MockDevice) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Writes returns the buffers written so far.
func (m *MockDevice) Writes() []*synth.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*synth.Buffer, len(m.writes))
	copy(out, m.writes)
	return out
}

// Closed reports whether Close was called.
func (m *MockDevice) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
