package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent, so
// the full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS entities (
		id          TEXT PRIMARY KEY,
		kind        TEXT NOT NULL
		            CHECK(kind IN ('organization','category','group','activity')),
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		parent_id   TEXT,
		position    INTEGER NOT NULL DEFAULT 0,
		attributes  TEXT,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entities_parent ON entities(parent_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_entities_kind ON entities(kind)`,

	`CREATE TABLE IF NOT EXISTS mass_slots (
		id       INTEGER PRIMARY KEY AUTOINCREMENT,
		day      INTEGER NOT NULL CHECK(day BETWEEN 0 AND 6),
		hour     INTEGER NOT NULL CHECK(hour BETWEEN 0 AND 23),
		minute   INTEGER NOT NULL CHECK(minute BETWEEN 0 AND 59),
		label    TEXT NOT NULL,
		position INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_mass_slots_position ON mass_slots(position)`,

	`CREATE TABLE IF NOT EXISTS preferences (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}
