package session

import (
	"testing"
)

func TestLog_MonotonicTimestamps(t *testing.T) {
	l := NewLog()

	l.Append(event(2.0, "left", "piano", "peace"))
	l.Append(event(1.0, "left", "piano", "fist")) // clock went backwards

	events := l.Events()
	if events[1].Timestamp != 2.0 {
		t.Errorf("expected regressed timestamp clamped to 2.0, got %f", events[1].Timestamp)
	}
}

func TestLog_EventsReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(event(1.0, "left", "piano", "peace"))

	events := l.Events()
	events[0].Gesture = "fist"

	if l.Events()[0].Gesture != "peace" {
		t.Error("expected mutations of the returned slice not to affect the log")
	}
}

func TestLog_MetricsInvalidatedOnAppend(t *testing.T) {
	l := NewLog()
	l.Append(event(1.0, "left", "piano", "peace"))

	if got := l.Metrics().TotalEvents; got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}

	l.Append(event(2.0, "right", "guitar", "fist"))
	if got := l.Metrics().TotalEvents; got != 2 {
		t.Errorf("expected cached metrics refreshed after append, got %d events", got)
	}
}
