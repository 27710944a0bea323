package orchestrators

import (
	"context"
	"fmt"

	"rollcall/internal/adapters/sink"
	"rollcall/internal/domain/session"
)

// Guard answers "was attendance already recorded for this person, class,
// session and date?" by querying the duplicate-check sink. A failed check is
// an error, never silently "not recorded".
type Guard struct {
	Check sink.Checker
}

// AlreadyRecorded runs the duplicate-check query.
// PRE: participantID was resolved from the loaded roster
// POST: true iff the sink reports a count greater than zero; a sink failure
// propagates as the error
func (g Guard) AlreadyRecorded(ctx context.Context, participantID int, sctx session.Context) (bool, error) {
	count, err := g.Check.CountRecorded(ctx, participantID, sctx.ClassID, sctx.SessionID, sctx.Date)
	if err != nil {
		return false, fmt.Errorf("duplicate check: %w", err)
	}
	return count > 0, nil
}
