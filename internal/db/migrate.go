package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so
// Migrate can run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL DEFAULT '',
		difficulty  INTEGER NOT NULL DEFAULT 0
		            CHECK(difficulty BETWEEN 0 AND 5),
		prep_time   INTEGER NOT NULL DEFAULT 0 CHECK(prep_time >= 0),
		cook_time   INTEGER NOT NULL DEFAULT 0 CHECK(cook_time >= 0),
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_drafts_updated ON drafts(updated_at)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_name ON drafts(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS draft_images (
		draft_id TEXT PRIMARY KEY REFERENCES drafts(id) ON DELETE CASCADE,
		data     BLOB NOT NULL
	)`,
}
