// Package session accumulates performance events and audio during a
// recording, derives statistics from the event log, and serializes the
// finalized artifacts (WAV audio, JSON events, JSON metrics, exports).
package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/gesture"
)

// Event is one performance event: a gesture that passed the confidence
// gate and produced a tone.
type Event struct {
	// Timestamp is seconds from session start.
	Timestamp  float64        `json:"timestamp"`
	Hand       detector.Hand  `json:"hand"`
	Instrument string         `json:"instrument"`
	Gesture    gesture.Symbol `json:"gesture"`
	Note       string         `json:"note"`
	Duration   float64        `json:"duration"`
}

// Log is an ordered, append-only event sequence with lazily cached
// metrics. Owned by the recorder's single writer; sealed logs are
// immutable.
type Log struct {
	events  []Event
	metrics *Metrics
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append adds an event, keeping timestamps monotonically
// non-decreasing and invalidating the cached metrics.
func (l *Log) Append(e Event) {
	if n := len(l.events); n > 0 && e.Timestamp < l.events[n-1].Timestamp {
		e.Timestamp = l.events[n-1].Timestamp
	}
	l.events = append(l.events, e)
	l.metrics = nil
}

// Events returns a copy of the ordered event list.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of events.
func (l *Log) Len() int {
	return len(l.events)
}

// Metrics returns the session metrics, computing them on first use
// after an append.
func (l *Log) Metrics() Metrics {
	if l.metrics == nil {
		m := Compute(l.events)
		l.metrics = &m
	}
	return *l.metrics
}

// LoadEvents reads an events JSON document back into an ordered list,
// field-for-field identical to what was written.
func LoadEvents(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parse events: %w", err)
	}
	return events, nil
}
