package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store holds all portal state in an in-memory SQLite database. Nothing is
// ever written to disk; the whole dataset lives and dies with the process,
// which is the contract the portal is built around. The pool is pinned to a
// single connection because an in-memory database is private to the
// connection that opened it.
type Store struct {
	db *sql.DB
}

func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma failed: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.seedCounters(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			perm_view INTEGER NOT NULL DEFAULT 0,
			perm_upload INTEGER NOT NULL DEFAULT 0,
			perm_download INTEGER NOT NULL DEFAULT 0,
			perm_delete INTEGER NOT NULL DEFAULT 0,
			perm_manage_users INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			last_login TEXT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS folders (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			parent_id TEXT NULL,
			created_by TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS folder_files (
			folder_id TEXT NOT NULL,
			file_id TEXT NOT NULL,
			PRIMARY KEY (folder_id, file_id)
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			size INTEGER NOT NULL,
			url TEXT NOT NULL,
			uploaded_at TEXT NOT NULL,
			uploaded_by TEXT NOT NULL,
			uploaded_by_id TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			folder_id TEXT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS share_links (
			id TEXT PRIMARY KEY,
			file_id TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at TEXT NOT NULL,
			expires_at TEXT NOT NULL,
			download_count INTEGER NOT NULL DEFAULT 0,
			max_downloads INTEGER NULL
		);`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			user_id TEXT NOT NULL,
			target_id TEXT NULL,
			details TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_id);`,
		`CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id);`,
		`CREATE INDEX IF NOT EXISTS idx_share_links_file ON share_links(file_id);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	return nil
}

// Timestamps are stored as RFC 3339 text so reads do not depend on driver
// datetime conversion rules.
const timeLayout = time.RFC3339Nano

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

func fmtNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
