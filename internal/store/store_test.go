package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/gesturebeats/internal/session"
)

func testStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(id string) *Session {
	return &Session{
		ID:          id,
		StartedAt:   time.Now(),
		Duration:    12.5,
		AudioPath:   "/tmp/" + id + ".wav",
		EventsPath:  "/tmp/" + id + ".json",
		MetricsPath: "/tmp/" + id + "_metrics.json",
	}
}

func testEvents() []session.Event {
	return []session.Event{
		{Timestamp: 0.5, Hand: "left", Instrument: "piano", Gesture: "peace", Note: "C4", Duration: 0.5},
		{Timestamp: 1.0, Hand: "right", Instrument: "guitar", Gesture: "fist", Note: "A2", Duration: 0.5},
		{Timestamp: 1.5, Hand: "left", Instrument: "piano", Gesture: "open_palm", Note: "E4", Duration: 0.5},
	}
}

func TestSessionRepository_CreateAndGet(t *testing.T) {
	s := testStore(t)

	sess := testSession("take1")
	if err := s.Sessions().Create(sess, testEvents()); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if sess.EventCount != 3 {
		t.Errorf("expected event count populated to 3, got %d", sess.EventCount)
	}

	got, err := s.Sessions().GetByID("take1")
	if err != nil {
		t.Fatalf("failed to get session: %v", err)
	}
	if got.ID != "take1" || got.EventCount != 3 || got.Duration != 12.5 {
		t.Errorf("unexpected session: %+v", got)
	}
	if got.AudioPath != sess.AudioPath {
		t.Errorf("expected audio path %q, got %q", sess.AudioPath, got.AudioPath)
	}
}

func TestSessionRepository_GetMissing(t *testing.T) {
	s := testStore(t)

	_, err := s.Sessions().GetByID("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_List(t *testing.T) {
	s := testStore(t)

	if err := s.Sessions().Create(testSession("a"), testEvents()); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := s.Sessions().Create(testSession("b"), nil); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	sessions, err := s.Sessions().List()
	if err != nil {
		t.Fatalf("failed to list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestSessionRepository_Events(t *testing.T) {
	s := testStore(t)

	want := testEvents()
	if err := s.Sessions().Create(testSession("take1"), want); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	got, err := s.Sessions().Events("take1")
	if err != nil {
		t.Fatalf("failed to load events: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSessionRepository_EventsMissingSession(t *testing.T) {
	s := testStore(t)

	_, err := s.Sessions().Events("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_Delete(t *testing.T) {
	s := testStore(t)

	if err := s.Sessions().Create(testSession("take1"), testEvents()); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if err := s.Sessions().Delete("take1"); err != nil {
		t.Fatalf("failed to delete session: %v", err)
	}

	if _, err := s.Sessions().GetByID("take1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected session gone after delete, got %v", err)
	}

	// Events cascade with the session.
	if _, err := s.Sessions().Events("take1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected events gone after delete, got %v", err)
	}
}

func TestSessionRepository_DeleteMissing(t *testing.T) {
	s := testStore(t)

	if err := s.Sessions().Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionRepository_DuplicateID(t *testing.T) {
	s := testStore(t)

	if err := s.Sessions().Create(testSession("take1"), nil); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := s.Sessions().Create(testSession("take1"), nil); err == nil {
		t.Error("expected duplicate session id to be rejected")
	}
}
