package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema creation.
// Each migration must be idempotent. Append new migrations at the end.
var migrations = []string{
	// Migration 1: Tag uniqueness only covers active items so that a trashed
	// item's tag can be reassigned to a new one.
	`DROP INDEX IF EXISTS idx_items_nfc`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_nfc_active
	     ON items(nfc_uid) WHERE nfc_uid IS NOT NULL AND removal_status = 'active'`,
	// Migration 2: Year-scoped queries are the common path on every screen.
	`CREATE INDEX IF NOT EXISTS idx_people_year ON people(year)`,
	`CREATE INDEX IF NOT EXISTS idx_locations_year ON locations(year)`,
	`CREATE INDEX IF NOT EXISTS idx_items_year ON items(year)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
