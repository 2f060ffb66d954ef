package catalog

import (
	"context"
	"database/sql"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS matcher (
    name TEXT PRIMARY KEY,
    extractor TEXT NOT NULL,
    build_id TEXT NOT NULL,
    updated_at INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS reference (
    matcher TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    descriptors BLOB NOT NULL,
    PRIMARY KEY (matcher, position)
)`}

// EnsureSchema creates the catalog tables if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
