package session

import (
	"errors"
	"time"
)

// Context is the immutable snapshot of the selected class, session and
// operator taken at the moment a scan starts processing. A roster reload or
// session change mid-scan never affects an in-flight context.
type Context struct {
	ClassID    int
	SessionID  int // 1 or 2
	OperatorID int
	Date       time.Time // wall-clock date when processing began
}

// Validate checks the Context before it is used to stamp attendance.
// PRE: Context fields are populated by the caller
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: SessionID must be 1 or 2
func (c Context) Validate() error {
	if c.SessionID != 1 && c.SessionID != 2 {
		return errors.New("session must be 1 or 2")
	}
	if c.ClassID <= 0 {
		return errors.New("a class must be selected")
	}
	return nil
}
