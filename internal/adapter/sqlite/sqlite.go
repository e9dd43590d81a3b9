// Package sqlite implements the key/value store port on a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"familyfit/internal/domain"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a *sql.DB backed by a SQLite file.
type DB struct {
	sql *sql.DB
}

var _ domain.KVStore = (*DB)(nil)

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*DB, error) {
	s, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// a single connection serialises writers
	s.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}
	if _, err := s.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS kv_store (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL
	);`
	if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.sql.QueryRowContext(ctx, `SELECT value FROM kv_store WHERE key = ?;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set upserts value under key.
func (d *DB) Set(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO kv_store(key, value, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`,
		key, value, time.Now().UTC(),
	)
	return err
}
