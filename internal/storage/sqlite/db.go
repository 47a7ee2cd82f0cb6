// Package sqlite persists exo's query and replacement history in SQLite.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/willibrandon/exo/internal/logger"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB is an open history database.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the history database at path, creating the file, its parent
// directory and the schema as needed.
func Open(path string) (*DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// a second pooled connection to :memory: would see an empty database
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}

	db := &DB{conn: conn, path: path}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate history database %s: %w", path, err)
	}

	logger.Debug("history database open", "path", path, "version", db.version())
	return db, nil
}

// dsn adds WAL journaling, a busy timeout and time parsing for created_at.
func dsn(path string) string {
	if path == MemoryPath {
		return path + "?_loc=auto"
	}
	return path + "?_journal_mode=WAL&_busy_timeout=5000&_loc=auto"
}

// withTx runs fn in a transaction, rolling back when fn fails.
func (db *DB) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Close closes the database.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Path returns the path the database was opened with.
func (db *DB) Path() string {
	return db.path
}
