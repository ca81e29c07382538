// Package store persists books, recipes, and TOC mappings in an embedded
// SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and owns all queries against it.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens or creates the database at path, initializing the schema
// on first use.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// ensureSchemaExists checks for the books table and initializes the
// schema if it is missing.
func (s *Store) ensureSchemaExists() error {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='books'").Scan(&name)
	if err == sql.ErrNoRows {
		s.logger.Debug("initializing database schema", "path", s.path)
		_, err := s.db.Exec(schema)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// execWrite runs a write statement, retrying while SQLite reports the
// database as busy or locked.
func (s *Store) execWrite(ctx context.Context, query string, args ...any) error {
	return retry.Do(
		func() error {
			_, err := s.db.ExecContext(ctx, query, args...)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(50*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
	)
}

// isBusy reports whether the error is SQLite lock contention.
func isBusy(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
