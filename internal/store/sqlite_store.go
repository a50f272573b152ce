package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"ptjobs/internal/domain"
)

const sqliteFilename = "storage.db"

// SQLiteStore keeps keys in a single table of a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and ensures the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: create dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open DB: %w", err)
	}

	ctx := context.Background()
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		// Avoid "database is locked" when two CLI invocations overlap.
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY NOT NULL,
		value TEXT NOT NULL
	);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: get %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *SQLiteStore) Remove(ctx context.Context, key string) error {
	return s.RemoveMany(ctx, key)
}

func (s *SQLiteStore) SetMany(ctx context.Context, entries map[string]string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for k, v := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO kv (key, value) VALUES (?, ?)
				 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, k, v); err != nil {
				return fmt.Errorf("store: set %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) RemoveMany(ctx context.Context, keys ...string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return fmt.Errorf("store: remove %q: %w", k, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Compile-time assertion that SQLiteStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*SQLiteStore)(nil)
