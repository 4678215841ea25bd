package storage

import "fmt"

// migration001 creates the schema version tracking table along with the
// core session and move tables.
const migration001 = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    name TEXT,
    started_at TEXT NOT NULL,
    ended_at TEXT,
    device_name TEXT,
    device_id TEXT
);

CREATE TABLE IF NOT EXISTS moves (
    move_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
    move_index INTEGER NOT NULL,
    face TEXT NOT NULL,
    clockwise INTEGER NOT NULL,
    notation TEXT NOT NULL,
    UNIQUE(session_id, move_index)
);

CREATE INDEX IF NOT EXISTS idx_moves_session ON moves(session_id);

INSERT INTO schema_version (version) VALUES (1);
`

// migration002 adds periodic cube state snapshots so long sessions can be
// resumed without replaying every move from the start.
const migration002 = `
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id TEXT NOT NULL REFERENCES sessions(session_id) ON DELETE CASCADE,
    move_index INTEGER NOT NULL,
    state TEXT NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE(session_id, move_index)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_session ON snapshots(session_id);

INSERT INTO schema_version (version) VALUES (2);
`

// migrations is an ordered list of migration SQL statements.
var migrations = []struct {
	version int
	sql     string
}{
	{1, migration001},
	{2, migration002},
}

// applyMigrations applies all pending migrations.
func (d *DB) applyMigrations() error {
	current, err := d.CurrentVersion()
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		if _, err := d.Exec(m.sql); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", m.version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied schema version, or 0 for a
// fresh database.
func (d *DB) CurrentVersion() (int, error) {
	// Check if schema_version table exists
	var count int
	err := d.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema version table: %w", err)
	}

	if count == 0 {
		return 0, nil
	}

	var version int
	err = d.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	return version, nil
}
