// Package history persists audit results in a local SQLite database so
// score movement can be tracked across runs of the same page. Only the
// total and the rounded per-category numbers are stored; factor-level
// detail lives in the report output, not here.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dotcommander/agentlens/internal/report"
)

const DefaultDBName = "agentlens.db"

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS audits (
    audit_id TEXT PRIMARY KEY,
    url TEXT NOT NULL,
    context TEXT NOT NULL,
    total_score INTEGER NOT NULL,
    grade TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS audit_categories (
    audit_id TEXT NOT NULL REFERENCES audits(audit_id) ON DELETE CASCADE,
    category TEXT NOT NULL,
    score INTEGER NOT NULL,
    pass_count INTEGER NOT NULL,
    warning_count INTEGER NOT NULL,
    fail_count INTEGER NOT NULL,
    PRIMARY KEY (audit_id, category)
);

CREATE INDEX IF NOT EXISTS idx_audits_url ON audits(url);
CREATE INDEX IF NOT EXISTS idx_audits_created ON audits(created_at);
`

// Store wraps the audit history database.
type Store struct {
	*sql.DB
	path string
}

// Entry is one recorded audit row.
type Entry struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Context    string    `json:"context"`
	TotalScore int       `json:"total_score"`
	Grade      string    `json:"grade"`
	CreatedAt  time.Time `json:"created_at"`
}

// CategoryRow is the bounded per-category snapshot stored with an audit:
// the rounded score and status counts, nothing factor-level.
type CategoryRow struct {
	Category string `json:"category"`
	Score    int    `json:"score"`
	Pass     int    `json:"pass"`
	Warning  int    `json:"warning"`
	Fail     int    `json:"fail"`
}

// Audit is one stored audit with its category snapshots, weakest
// category first.
type Audit struct {
	Entry
	Categories []CategoryRow `json:"categories"`
}

// Open opens or creates the history database at path. An empty path
// resolves to DefaultDBName in the user config directory.
func Open(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		if err := os.MkdirAll(filepath.Join(dir, "agentlens"), 0o755); err != nil {
			return nil, fmt.Errorf("creating config dir: %w", err)
		}
		path = filepath.Join(dir, "agentlens", DefaultDBName)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	s := &Store{DB: db, path: path}
	if err := s.ensureSchemaExists(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing history schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchemaExists() error {
	var name string
	err := s.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='audits'").Scan(&name)
	if err == sql.ErrNoRows {
		_, err = s.Exec(schema)
		return err
	}
	return err
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Record persists one audit result and returns its id. Category rows are
// taken from the result summary, so they carry rounded scores and status
// counts only.
func (s *Store) Record(r report.ScoreResult) (string, error) {
	tx, err := s.Begin()
	if err != nil {
		return "", fmt.Errorf("recording audit: %w", err)
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.Exec(
		"INSERT INTO audits (audit_id, url, context, total_score, grade, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		id, r.URL, r.Context, r.TotalScore, r.Grade, r.Timestamp,
	)
	if err != nil {
		return "", fmt.Errorf("recording audit: %w", err)
	}

	for _, row := range r.Summary() {
		_, err = tx.Exec(
			"INSERT INTO audit_categories (audit_id, category, score, pass_count, warning_count, fail_count) VALUES (?, ?, ?, ?, ?, ?)",
			id, row.Key, row.Score, row.Pass, row.Warning, row.Fail,
		)
		if err != nil {
			return "", fmt.Errorf("recording category snapshot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("recording audit: %w", err)
	}
	return id, nil
}

// List returns the most recent audits, newest first. A non-empty url
// filters to that page; limit <= 0 means 20.
func (s *Store) List(url string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT audit_id, url, context, total_score, grade, created_at FROM audits"
	args := []any{}
	if url != "" {
		query += " WHERE url = ?"
		args = append(args, url)
	}
	query += " ORDER BY created_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing audits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.URL, &e.Context, &e.TotalScore, &e.Grade, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get loads one stored audit and its category snapshots.
func (s *Store) Get(id string) (*Audit, error) {
	var a Audit
	err := s.QueryRow(
		"SELECT audit_id, url, context, total_score, grade, created_at FROM audits WHERE audit_id = ?", id,
	).Scan(&a.ID, &a.URL, &a.Context, &a.TotalScore, &a.Grade, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("audit %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("loading audit %s: %w", id, err)
	}

	rows, err := s.Query(
		"SELECT category, score, pass_count, warning_count, fail_count FROM audit_categories WHERE audit_id = ? ORDER BY score ASC, category ASC", id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading audit %s categories: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c CategoryRow
		if err := rows.Scan(&c.Category, &c.Score, &c.Pass, &c.Warning, &c.Fail); err != nil {
			return nil, fmt.Errorf("scanning category row: %w", err)
		}
		a.Categories = append(a.Categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &a, nil
}
