package scanlog

import (
	"context"
	"database/sql"
	"time"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/scanlog"
)

const dateLayout = "2006-01-02T15:04:05.999999999Z07:00"

// SQLiteStore implements the scan journal Store interface using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new scan journal store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists one journal entry.
// PRE: entry is valid
// POST: Entry is persisted
func (s *SQLiteStore) Save(ctx context.Context, entry domain.Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO scan_log (id, scanned_at, scan_text, participant_id, participant_name, class_id, session_id, operator_id, outcome, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ScannedAt.Format(dateLayout), entry.ScanText,
		entry.ParticipantID, entry.ParticipantName,
		entry.ClassID, entry.SessionID, entry.OperatorID,
		entry.Outcome, entry.Detail)
	return err
}

// ListRecent returns the most recent entries.
// PRE: limit > 0
// POST: Returns entries ordered by scan time desc
func (s *SQLiteStore) ListRecent(ctx context.Context, limit int) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scanned_at, scan_text, participant_id, participant_name, class_id, session_id, operator_id, outcome, detail
		 FROM scan_log ORDER BY scanned_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

// scanEntries scans multiple rows into a slice of Entries.
func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		var scannedAt string
		err := rows.Scan(&e.ID, &scannedAt, &e.ScanText, &e.ParticipantID, &e.ParticipantName,
			&e.ClassID, &e.SessionID, &e.OperatorID, &e.Outcome, &e.Detail)
		if err != nil {
			return nil, err
		}
		e.ScannedAt, _ = time.Parse(dateLayout, scannedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
