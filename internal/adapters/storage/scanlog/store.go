package scanlog

import (
	"context"

	"rollcall/internal/adapters/storage"
	domain "rollcall/internal/domain/scanlog"
)

// Store defines the interface for scan journal persistence.
type Store interface {
	// Save persists one journal entry.
	// PRE: entry is valid
	// POST: Entry is persisted
	Save(ctx context.Context, entry domain.Entry) error

	// ListRecent returns the most recent entries.
	// PRE: limit > 0
	// POST: Returns entries ordered by scan time desc
	ListRecent(ctx context.Context, limit int) ([]domain.Entry, error)
}

// Ensure SQLiteStore implements Store interface.
var _ Store = (*SQLiteStore)(nil)

// SQLDB defines the database interface needed by the store.
type SQLDB interface {
	storage.SQLDB
}
