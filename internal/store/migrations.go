package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Sessions table - one row per finalized recording
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			duration REAL NOT NULL DEFAULT 0,
			event_count INTEGER NOT NULL DEFAULT 0,
			audio_path TEXT NOT NULL,
			events_path TEXT NOT NULL,
			metrics_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Events table - ordered performance events per session
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			sequence INTEGER NOT NULL,
			timestamp REAL NOT NULL,
			hand TEXT NOT NULL CHECK(hand IN ('left', 'right')),
			instrument TEXT NOT NULL,
			gesture TEXT NOT NULL,
			note TEXT NOT NULL,
			duration REAL NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_events_session
			ON events(session_id, sequence)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
