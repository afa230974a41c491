// Package sqlite provides the SQLite-based archive index.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB represents a SQLite database connection.
type DB struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use MemoryPath for an in-memory database. Nothing touches the disk
// until Open is called.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the database connection and creates the schema if needed.
// The parent directory of a file database is created first. Calling Open
// on an open DB is a no-op.
func (db *DB) Open() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.db != nil {
		return nil
	}

	if db.path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(db.path), 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait on lock contention from a concurrent run instead of failing.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != MemoryPath {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		db.db = nil
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.db != nil {
		err := db.db.Close()
		db.db = nil
		return err
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS archives (
			id TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			authority TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			article_path TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			images INTEGER NOT NULL DEFAULT 0,
			fetched_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_archives_authority ON archives(authority);
		CREATE INDEX IF NOT EXISTS idx_archives_source_url ON archives(source_url);
	`

	_, err := db.db.Exec(schema)
	return err
}
