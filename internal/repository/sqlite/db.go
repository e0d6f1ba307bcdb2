package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
    username      TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS patients (
    patient_id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name               TEXT NOT NULL,
    contact            TEXT NOT NULL,
    diagnosis          TEXT NOT NULL,
    anonymized_name    TEXT NOT NULL,
    anonymized_contact TEXT NOT NULL,
    encrypted_name     TEXT NOT NULL,
    encrypted_contact  TEXT NOT NULL,
    date_added         DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_logs (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    username  TEXT NOT NULL,
    role      TEXT NOT NULL,
    action    TEXT NOT NULL,
    detail    TEXT NOT NULL,
    timestamp DATETIME NOT NULL
);
`

// Open opens (or creates) the sqlite database at path and bootstraps the
// schema. An empty path yields an in-memory database.
func Open(path string) (*sqlx.DB, error) {
	dsn := ":memory:"
	if path != "" && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
		dsn = path
	}

	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// single writer keeps sqlite happy and matches the single-session
	// interaction model
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return db, nil
}
