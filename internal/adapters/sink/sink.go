package sink

import (
	"context"
	"fmt"
	"time"

	"rollcall/internal/domain/attendance"
)

// Writer is the interface for a sink that accepts one attendance write.
// Each Write is a single remote call with its own timeout, attempted exactly
// once; retries are the caller's business, and the core never retries.
type Writer interface {
	Write(ctx context.Context, rec attendance.Record) error
}

// Checker is the interface for the duplicate-check query endpoint.
type Checker interface {
	// CountRecorded returns how many attendance records exist for the
	// participant in the given class, session and date.
	CountRecorded(ctx context.Context, participantID, classID, sessionID int, date time.Time) (int, error)
}

// Error wraps a transport, protocol or malformed-response failure from one
// remote sink call.
type Error struct {
	Sink string // attendance.SinkForm, SinkCloud or SinkCheck
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s sink %s: %v", e.Sink, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
