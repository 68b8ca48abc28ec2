package repository

import (
	"context"
	"database/sql"
	"errors"
)

// SQLiteKV implements KV over a single-table SQLite database.
type SQLiteKV struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLiteKV creates a new SQLiteKV with the given database connection.
// db must be a valid *sql.DB whose schema was applied by db.InitSQLite.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{DB: db}
}

// Get returns the value stored under key, or ok=false if absent.
func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT value FROM kv WHERE key = ?`,
		key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	_, err := s.DB.ExecContext(
		ctx,
		`DELETE FROM kv WHERE key = ?`,
		key,
	)
	return err
}
