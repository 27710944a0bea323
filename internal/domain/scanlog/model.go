package scanlog

import (
	"errors"
	"time"
)

// Entry is one journaled scan outcome. The journal is an audit trail for
// operator review only: nothing is ever replayed or re-sent from it.
type Entry struct {
	ID              string
	ScannedAt       time.Time
	ScanText        string
	ParticipantID   int
	ParticipantName string
	ClassID         int
	SessionID       int
	OperatorID      int
	Outcome         string
	Detail          string
}

// Validate checks if the Entry has valid data.
// PRE: Entry struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (e *Entry) Validate() error {
	if e.ID == "" {
		return errors.New("entry ID must be set")
	}
	if e.ScannedAt.IsZero() {
		return errors.New("scan time must be set")
	}
	if e.Outcome == "" {
		return errors.New("entry must carry an outcome")
	}
	return nil
}
