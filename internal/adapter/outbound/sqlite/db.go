// Package sqlite provides durable SQLite-backed repositories so gatekeeper
// and user state survive process restarts.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS gatekeepers (
	slot                 INTEGER PRIMARY KEY CHECK (slot = 1),
	id                   TEXT    NOT NULL,
	session_duration_ns  INTEGER NOT NULL,
	max_failed_attempts  INTEGER NOT NULL,
	block_duration_ns    INTEGER NOT NULL,
	failed_attempt_count INTEGER NOT NULL,
	access_denied_at     INTEGER,
	session_id           TEXT,
	session_duration2_ns INTEGER,
	session_started_at   INTEGER,
	session_ended_at     INTEGER,
	session_updated_at   INTEGER
);

CREATE TABLE IF NOT EXISTS users (
	slot       INTEGER PRIMARY KEY CHECK (slot = 1),
	id         TEXT NOT NULL,
	password   TEXT NOT NULL,
	session_id TEXT
);
`

// Open opens (creating if necessary) the walletguard database at path and
// initializes the schema. SQLite supports one writer at a time, so the
// connection pool is limited to a single connection.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return db, nil
}
