package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// DefaultCapacity bounds each kind when no capacity was set for it.
const DefaultCapacity = 128

// HistoryEntry is one persisted query or replacement.
type HistoryEntry struct {
	ID        int64
	Kind      string
	Entry     string
	CreatedAt time.Time
}

// HistoryStore keeps the most recent entries of each history kind.
type HistoryStore struct {
	db       *DB
	capacity map[string]int
}

// NewHistoryStore creates a new history store.
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db, capacity: map[string]int{}}
}

// SetCapacity sets how many entries of kind are retained.
func (s *HistoryStore) SetCapacity(kind string, n int) {
	s.capacity[kind] = n
}

func (s *HistoryStore) limit(kind string) int {
	if n, ok := s.capacity[kind]; ok && n > 0 {
		return n
	}
	return DefaultCapacity
}

// Add appends entry to kind and drops the oldest entries beyond capacity.
func (s *HistoryStore) Add(kind, entry string) error {
	err := s.db.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO history (kind, entry, created_at)
			VALUES (?, ?, ?)
		`, kind, entry, time.Now()); err != nil {
			return err
		}
		_, err := tx.Exec(`
			DELETE FROM history
			WHERE kind = ? AND id NOT IN (
				SELECT id FROM history
				WHERE kind = ?
				ORDER BY id DESC
				LIMIT ?
			)
		`, kind, kind, s.limit(kind))
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to add %s history: %w", kind, err)
	}
	return nil
}

// Recent returns up to limit entry texts of kind, oldest first.
func (s *HistoryStore) Recent(kind string, limit int) ([]string, error) {
	entries, err := s.List(kind, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e.Entry
	}
	return out, nil
}

// List returns up to limit entries of kind, newest first.
func (s *HistoryStore) List(kind string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = s.limit(kind)
	}

	rows, err := s.db.conn.Query(`
		SELECT id, kind, entry, created_at
		FROM history
		WHERE kind = ?
		ORDER BY id DESC
		LIMIT ?
	`, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s history: %w", kind, err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Entry, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s history: %w", kind, err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Count returns the number of stored entries of kind.
func (s *HistoryStore) Count(kind string) (int, error) {
	var count int
	err := s.db.conn.QueryRow("SELECT COUNT(*) FROM history WHERE kind = ?", kind).Scan(&count)
	return count, err
}

// Clear removes every entry of kind.
func (s *HistoryStore) Clear(kind string) error {
	_, err := s.db.conn.Exec("DELETE FROM history WHERE kind = ?", kind)
	return err
}
