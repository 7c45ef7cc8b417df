package dao

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/vdash/vdash/internal/model1"
)

const (
	busyTimeout = 5000 // milliseconds
	sqliteFile  = "vdash.db"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS records (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	pos  INTEGER NOT NULL,
	body TEXT NOT NULL,
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS records_kind_pos ON records (kind, pos);`

// SQLiteStore keeps records as JSON bodies in a single SQLite table.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// NewSQLiteStore opens or creates the database. path may name a
// directory, in which case the database file lives inside it.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store requires a path")
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, sqliteFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{conn: conn, path: path}, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string {
	return s.path
}

// List returns all records of kind in insertion order.
func (s *SQLiteStore) List(ctx context.Context, kind string) (model1.Records, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT body FROM records WHERE kind = ? ORDER BY pos`, kind)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer func() { _ = rows.Close() }()

	rr := make(model1.Records, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		rec, err := decodeRecord(body)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", kind, err)
		}
		rr = append(rr, rec)
	}

	return rr, rows.Err()
}

// Get returns one record.
func (s *SQLiteStore) Get(ctx context.Context, kind, id string) (model1.Record, error) {
	var body string
	err := s.conn.QueryRowContext(ctx, `SELECT body FROM records WHERE kind = ? AND id = ?`, kind, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %q: %w", kind, id, err)
	}
	return decodeRecord(body)
}

// Put inserts a record at the end or replaces it in place.
func (s *SQLiteStore) Put(ctx context.Context, kind string, rec model1.Record) error {
	if err := validateRecord(kind, rec); err != nil {
		return err
	}
	bb, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kind, err)
	}
	_, err = s.conn.ExecContext(ctx, `
INSERT INTO records (kind, id, pos, body)
VALUES (?, ?, (SELECT COALESCE(MAX(pos), -1) + 1 FROM records WHERE kind = ?), ?)
ON CONFLICT (kind, id) DO UPDATE SET body = excluded.body`,
		kind, rec.ID(), kind, string(bb))
	if err != nil {
		return fmt.Errorf("put %s %q: %w", kind, rec.ID(), err)
	}
	return nil
}

// Delete removes a record.
func (s *SQLiteStore) Delete(ctx context.Context, kind, id string) error {
	res, err := s.conn.ExecContext(ctx, `DELETE FROM records WHERE kind = ? AND id = ?`, kind, id)
	if err != nil {
		return fmt.Errorf("delete %s %q: %w", kind, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func decodeRecord(body string) (model1.Record, error) {
	var rec model1.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
