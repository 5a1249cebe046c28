package db

import "database/sql"

// SchemaSQL is the complete schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. Tests use it via
// GetSchemaSQL() rather than their own CREATE TABLE statements, so a
// repository referencing a missing column fails with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Completed puzzles, one row per puzzle id
CREATE TABLE IF NOT EXISTS completions (
	xdid TEXT PRIMARY KEY,
	title TEXT,
	user TEXT NOT NULL,
	cells INTEGER NOT NULL DEFAULT 0,
	solvers INTEGER NOT NULL DEFAULT 0,
	elapsed_seconds INTEGER NOT NULL DEFAULT 0,
	journal_path TEXT,
	completed_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_completions_user ON completions(user);
CREATE INDEX IF NOT EXISTS idx_completions_completed_at ON completions(completed_at);
`

// InitSchema creates the database schema
func InitSchema(conn *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(conn)
	}

	// Completely fresh install - create modern schema directly and mark all
	// migrations as applied
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}
	if err := createVersionTable(conn); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
