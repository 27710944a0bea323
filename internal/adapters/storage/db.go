package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLDB is the database interface the stores need. *sql.DB satisfies it.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// The journal is an audit trail of processed scans only; attendance facts
	// live in the remote sinks and are never replayed from here.
	schema := `
	CREATE TABLE IF NOT EXISTS scan_log (
		id TEXT PRIMARY KEY,
		scanned_at TEXT NOT NULL,
		scan_text TEXT NOT NULL,
		participant_id INTEGER NOT NULL DEFAULT 0,
		participant_name TEXT NOT NULL DEFAULT '',
		class_id INTEGER NOT NULL DEFAULT 0,
		session_id INTEGER NOT NULL DEFAULT 0,
		operator_id INTEGER NOT NULL DEFAULT 0,
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_scan_log_scanned_at ON scan_log(scanned_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
