package session

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteSlot persists the collection in a single-row sqlite table. It keeps
// the whole-slot-replace contract of the file slot while surviving partially
// written files on crash.
type SQLiteSlot struct {
	db *sql.DB
}

// OpenSQLiteSlot opens (and if needed creates) the slot database at path.
func OpenSQLiteSlot(path string) (*SQLiteSlot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS session_slot (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create session_slot table: %w", err)
	}

	return &SQLiteSlot{db: db}, nil
}

func (s *SQLiteSlot) Read() ([]byte, error) {
	var payload []byte
	err := s.db.QueryRow("SELECT payload FROM session_slot WHERE id = 1").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *SQLiteSlot) Write(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO session_slot (id, payload, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		data,
	)
	return err
}

// Close releases the underlying database handle.
func (s *SQLiteSlot) Close() error {
	return s.db.Close()
}
