package collection

import (
	"context"
	"database/sql"
	"strings"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS collections (
    id    INTEGER PRIMARY KEY AUTOINCREMENT,
    name  TEXT NOT NULL UNIQUE,
    model TEXT
);`,
	`CREATE TABLE IF NOT EXISTS embeddings (
    collection_id INTEGER NOT NULL,
    id            TEXT NOT NULL,
    embedding     BLOB NOT NULL,
    content       TEXT,
    metadata      TEXT,
    PRIMARY KEY (collection_id, id)
);`,
}

// EnsureSchema creates the collections and embeddings tables if they do not
// already exist. Safe to call repeatedly; collections resolve their row
// through it on first use, so callers rarely need it directly.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// isMissingTable reports whether err is SQLite's complaint about querying a
// table that has never been created. Read-only operations treat that the same
// as an empty store instead of forcing schema creation.
func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
