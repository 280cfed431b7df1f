package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username_active
    ON users(username) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS people (
    id                INTEGER PRIMARY KEY,
    name              TEXT NOT NULL,
    email             TEXT NOT NULL DEFAULT '',
    real_name         TEXT NOT NULL DEFAULT '',
    entry_date        TEXT NOT NULL DEFAULT '',
    exit_date         TEXT NOT NULL DEFAULT '',
    camp_name         TEXT NOT NULL DEFAULT '',
    notes             TEXT NOT NULL DEFAULT '',
    year              TEXT NOT NULL,
    skipping          INTEGER NOT NULL DEFAULT 0,
    is_infrastructure INTEGER NOT NULL DEFAULT 0,
    years_attended    TEXT NOT NULL DEFAULT '',
    has_ticket        INTEGER NOT NULL DEFAULT 0,
    paid_dues         INTEGER NOT NULL DEFAULT 0,
    photo_path        TEXT
);

CREATE INDEX IF NOT EXISTS idx_people_year ON people(year);

CREATE TABLE IF NOT EXISTS locations (
    id          INTEGER PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    year        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_locations_year ON locations(year);

CREATE TABLE IF NOT EXISTS items (
    id             INTEGER PRIMARY KEY,
    name           TEXT NOT NULL,
    description    TEXT,
    camper_id      INTEGER NOT NULL REFERENCES people(id),
    location_id    INTEGER NOT NULL REFERENCES locations(id),
    photo_path     TEXT,
    year           TEXT NOT NULL,
    created_date   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    removal_status TEXT NOT NULL DEFAULT 'active'
        CHECK (removal_status IN ('active', 'trashed', 'taken_home', 'donated')),
    nfc_uid        TEXT,
    last_sighting  DATETIME
);

CREATE INDEX IF NOT EXISTS idx_items_year ON items(year);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_nfc_active
    ON items(nfc_uid) WHERE nfc_uid IS NOT NULL AND removal_status = 'active';

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
