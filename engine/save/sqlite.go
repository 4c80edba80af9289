package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the record as a single row and appends a journal entry
// for every write.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// JournalEntry is one persisted operation.
type JournalEntry struct {
	ID      int64
	At      time.Time
	Kind    string
	Summary string
}

// OpenSQLite opens (and creates if missing) the database at path and
// applies the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between the record and the journal.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS save_record (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			data TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS journal (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at TEXT NOT NULL,
			kind TEXT NOT NULL,
			summary TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_at ON journal(at);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored record or ErrNoSave.
func (s *SQLiteStore) Load(ctx context.Context) ([]byte, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM save_record WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("save_record get: %w", err)
	}
	return []byte(data), nil
}

// Save upserts the record and appends a journal entry in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, data []byte, note string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	at := s.now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO save_record (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, string(data), at); err != nil {
		return fmt.Errorf("save_record upsert: %w", err)
	}
	kind, summary := splitNote(note)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO journal (at, kind, summary) VALUES (?, ?, ?)`, at, kind, summary); err != nil {
		return fmt.Errorf("journal insert: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Journal returns the most recent entries, newest first.
func (s *SQLiteStore) Journal(ctx context.Context, limit int) ([]JournalEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, kind, summary FROM journal ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}
	defer rows.Close()

	var out []JournalEntry
	for rows.Next() {
		var e JournalEntry
		var at string
		var summary sql.NullString
		if err := rows.Scan(&e.ID, &at, &e.Kind, &summary); err != nil {
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		if e.At, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("journal time: %w", err)
		}
		e.Summary = summary.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// splitNote splits "kind: summary" notes. Notes without a colon are all kind.
func splitNote(note string) (kind, summary string) {
	kind, summary, _ = strings.Cut(note, ":")
	return strings.TrimSpace(kind), strings.TrimSpace(summary)
}
