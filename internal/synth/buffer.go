// Package synth generates fixed-length stereo tone buffers from
// gesture events: an oscillator bank, percussive voices, ADSR
// envelopes and an optional effects chain.
package synth

import "time"

// Audio format constants. Every buffer in the pipeline uses this
// format end to end, including the recorded WAV output.
const (
	SampleRate   = 44100
	NumChannels  = 2
	BitDepth     = 16
	ToneDuration = 500 * time.Millisecond
	// ToneSamples is the canonical per-channel sample count of one
	// synthesized buffer.
	ToneSamples = int(SampleRate * ToneDuration / time.Second)
)

// Buffer is a fixed-duration stereo float sample block. Ownership
// transfers by hand-off between pipeline stages; stages never share a
// buffer mutably.
type Buffer struct {
	Left  []float64
	Right []float64
}

// NewBuffer allocates a silent buffer of the canonical length.
func NewBuffer() *Buffer {
	return &Buffer{
		Left:  make([]float64, ToneSamples),
		Right: make([]float64, ToneSamples),
	}
}

// Silence returns a fresh all-zero buffer.
func Silence() *Buffer {
	return NewBuffer()
}

// Samples returns the per-channel sample count.
func (b *Buffer) Samples() int {
	return len(b.Left)
}
