package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/gesturebeats/internal/detector"
	"github.com/ayusman/gesturebeats/internal/gesture"
	"github.com/ayusman/gesturebeats/internal/session"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Session represents a finalized recording in the catalog.
type Session struct {
	ID          string
	StartedAt   time.Time
	Duration    float64
	EventCount  int
	AudioPath   string
	EventsPath  string
	MetricsPath string
	CreatedAt   time.Time
}

// SessionRepository provides catalog operations for sessions.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a finalized session and its ordered events in one
// transaction.
func (r *SessionRepository) Create(sess *Session, events []session.Event) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	sess.EventCount = len(events)

	_, err = tx.Exec(
		`INSERT INTO sessions (id, started_at, duration, event_count, audio_path, events_path, metrics_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.StartedAt, sess.Duration, sess.EventCount,
		sess.AudioPath, sess.EventsPath, sess.MetricsPath,
	)
	if err != nil {
		return err
	}

	for i, e := range events {
		_, err = tx.Exec(
			`INSERT INTO events (session_id, sequence, timestamp, hand, instrument, gesture, note, duration)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, i, e.Timestamp, string(e.Hand), e.Instrument,
			string(e.Gesture), e.Note, e.Duration,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	sess := &Session{}

	err := r.db.QueryRow(
		`SELECT id, started_at, duration, event_count, audio_path, events_path, metrics_path, created_at
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&sess.ID, &sess.StartedAt, &sess.Duration, &sess.EventCount,
		&sess.AudioPath, &sess.EventsPath, &sess.MetricsPath, &sess.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return sess, nil
}

// List retrieves all sessions, newest first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, duration, event_count, audio_path, events_path, metrics_path, created_at
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		err := rows.Scan(&sess.ID, &sess.StartedAt, &sess.Duration, &sess.EventCount,
			&sess.AudioPath, &sess.EventsPath, &sess.MetricsPath, &sess.CreatedAt)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Events retrieves a session's ordered event list.
func (r *SessionRepository) Events(sessionID string) ([]session.Event, error) {
	if _, err := r.GetByID(sessionID); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT timestamp, hand, instrument, gesture, note, duration
		 FROM events WHERE session_id = ? ORDER BY sequence`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []session.Event
	for rows.Next() {
		var e session.Event
		var hand, sym string
		if err := rows.Scan(&e.Timestamp, &hand, &e.Instrument, &sym, &e.Note, &e.Duration); err != nil {
			return nil, err
		}
		e.Hand = detector.Hand(hand)
		e.Gesture = gesture.Symbol(sym)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Delete removes a session and, via cascade, its events.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
