package attendance

import (
	"errors"
	"time"
)

// DateLayout is the short-form date text the remote sinks expect, e.g.
// "6/21/2026". This is a fixed external contract shared by the duplicate-check
// query and the cloud sink payload.
const DateLayout = "1/2/2006"

// Record holds one attendance fact for the duration of a single write. It is
// never persisted locally; each sink serializes it in its own shape.
type Record struct {
	ParticipantID   int
	ParticipantName string
	ClassID         int
	SessionID       int
	OperatorID      int
	Date            time.Time
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: a record must name a participant and carry a date
func (r *Record) Validate() error {
	if r.ParticipantName == "" {
		return errors.New("attendance must name a participant")
	}
	if r.Date.IsZero() {
		return errors.New("attendance date must be set")
	}
	if r.SessionID != 1 && r.SessionID != 2 {
		return errors.New("session must be 1 or 2")
	}
	return nil
}

// DateText returns the record date in the sinks' short-form contract.
func (r *Record) DateText() string {
	return r.Date.Format(DateLayout)
}
