package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vitalog-dev/vitalog/internal/core"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one stored tracker log entry. Values holds only the fields
// the user actually logged; a stored zero is a real observation.
type Entry struct {
	ID         string
	Tracker    string
	OccurredAt time.Time
	Note       string
	Values     map[string]float64
}

// Store persists tracker log entries in a local SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: creating DB dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening DB: %w", err)
	}
	if err := configureConnection(db); err != nil {
		db.Close()
		return nil, err
	}

	s := New(db)
	if err := s.Init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func configureConnection(db *sql.DB) error {
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return fmt.Errorf("store: set journal_mode WAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA synchronous = NORMAL;`); err != nil {
		return fmt.Errorf("store: set synchronous NORMAL: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000;`); err != nil {
		return fmt.Errorf("store: set busy_timeout: %w", err)
	}
	return nil
}

func (s *Store) Init(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS entries (
			entry_id TEXT PRIMARY KEY,
			tracker TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			note TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_tracker_occurred ON entries(tracker, occurred_at);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_occurred ON entries(occurred_at);`,
		`CREATE TABLE IF NOT EXISTS entry_values (
			entry_id TEXT NOT NULL,
			field TEXT NOT NULL,
			value REAL NOT NULL,
			PRIMARY KEY(entry_id, field),
			FOREIGN KEY(entry_id) REFERENCES entries(entry_id) ON DELETE CASCADE
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
	}
	return nil
}

// Insert persists a new entry and returns its ID. An empty entry ID is
// assigned a fresh UUID; a caller-supplied ID (remote sync) is kept and
// duplicate IDs are ignored rather than erroring.
func (s *Store) Insert(ctx context.Context, e Entry) (string, error) {
	if _, ok := core.TrackerByID(e.Tracker); !ok {
		return "", fmt.Errorf("store: unknown tracker %q", e.Tracker)
	}
	id := strings.TrimSpace(e.ID)
	assigned := false
	if id == "" {
		var err error
		id, err = newUUID()
		if err != nil {
			return "", fmt.Errorf("store: create entry id: %w", err)
		}
		assigned = true
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO entries (entry_id, tracker, occurred_at, note, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		id,
		e.Tracker,
		e.OccurredAt.UTC().Format(time.RFC3339),
		nullable(e.Note),
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("store: insert entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if assigned {
			return "", fmt.Errorf("store: entry id collision")
		}
		// Already synced.
		return id, tx.Commit()
	}

	for field, value := range e.Values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entry_values (entry_id, field, value) VALUES (?, ?, ?)
		`, id, field, value); err != nil {
			return "", fmt.Errorf("store: insert value %q: %w", field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("store: commit tx: %w", err)
	}
	return id, nil
}

// Update replaces an entry's timestamp, note, and values.
func (s *Store) Update(ctx context.Context, e Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE entries SET occurred_at = ?, note = ? WHERE entry_id = ?
	`, e.OccurredAt.UTC().Format(time.RFC3339), nullable(e.Note), e.ID)
	if err != nil {
		return fmt.Errorf("store: update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: entry %s not found", e.ID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_values WHERE entry_id = ?`, e.ID); err != nil {
		return fmt.Errorf("store: clear values: %w", err)
	}
	for field, value := range e.Values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO entry_values (entry_id, field, value) VALUES (?, ?, ?)
		`, e.ID, field, value); err != nil {
			return fmt.Errorf("store: insert value %q: %w", field, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit tx: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entry_values WHERE entry_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete values: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE entry_id = ?`, id); err != nil {
		return fmt.Errorf("store: delete entry: %w", err)
	}
	return nil
}

// EntriesBetween returns a tracker's entries with from <= occurred_at < to,
// oldest first, values attached.
func (s *Store) EntriesBetween(ctx context.Context, tracker string, from, to time.Time) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, tracker, occurred_at, COALESCE(note, '')
		FROM entries
		WHERE tracker = ? AND occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at ASC
	`, tracker, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("store: query entries: %w", err)
	}
	defer rows.Close()
	return s.scanEntries(ctx, rows)
}

// Recent returns a tracker's newest entries, newest first.
func (s *Store) Recent(ctx context.Context, tracker string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, tracker, occurred_at, COALESCE(note, '')
		FROM entries
		WHERE tracker = ?
		ORDER BY occurred_at DESC
		LIMIT ?
	`, tracker, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent: %w", err)
	}
	defer rows.Close()
	return s.scanEntries(ctx, rows)
}

func (s *Store) scanEntries(ctx context.Context, rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var occurred string
		if err := rows.Scan(&e.ID, &e.Tracker, &occurred, &e.Note); err != nil {
			return nil, fmt.Errorf("store: scan entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339, occurred)
		if err != nil {
			return nil, fmt.Errorf("store: parse occurred_at %q: %w", occurred, err)
		}
		e.OccurredAt = t
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate entries: %w", err)
	}

	for i := range entries {
		values, err := s.valuesFor(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Values = values
	}
	return entries, nil
}

func (s *Store) valuesFor(ctx context.Context, entryID string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT field, value FROM entry_values WHERE entry_id = ?
	`, entryID)
	if err != nil {
		return nil, fmt.Errorf("store: query values: %w", err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var field string
		var value float64
		if err := rows.Scan(&field, &value); err != nil {
			return nil, fmt.Errorf("store: scan value: %w", err)
		}
		values[field] = value
	}
	return values, rows.Err()
}

// CategorizedBetween returns one categorized entry per stored log with
// from <= occurred_at < to; the category is the tracker ID. This feeds
// the activity heatmap.
func (s *Store) CategorizedBetween(ctx context.Context, from, to time.Time) ([]core.CategorizedEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tracker, occurred_at
		FROM entries
		WHERE occurred_at >= ? AND occurred_at < ?
		ORDER BY occurred_at ASC
	`, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("store: query categorized: %w", err)
	}
	defer rows.Close()

	var out []core.CategorizedEntry
	for rows.Next() {
		var tracker, occurred string
		if err := rows.Scan(&tracker, &occurred); err != nil {
			return nil, fmt.Errorf("store: scan categorized: %w", err)
		}
		t, err := time.Parse(time.RFC3339, occurred)
		if err != nil {
			return nil, fmt.Errorf("store: parse occurred_at %q: %w", occurred, err)
		}
		out = append(out, core.CategorizedEntry{Category: tracker, Timestamp: t})
	}
	return out, rows.Err()
}

// Records converts stored entries into the series builder's input shape.
func Records(entries []Entry) []core.Record {
	out := make([]core.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, core.Record{Timestamp: e.OccurredAt, Values: e.Values})
	}
	return out
}

func nullable(v string) interface{} {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}

func newUUID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80

	encoded := hex.EncodeToString(buf)
	return fmt.Sprintf("%s-%s-%s-%s-%s",
		encoded[0:8],
		encoded[8:12],
		encoded[12:16],
		encoded[16:20],
		encoded[20:32],
	), nil
}
