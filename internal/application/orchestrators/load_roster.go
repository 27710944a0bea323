package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"rollcall/internal/domain/roster"
)

// RosterProvider defines the provider interface needed by LoadRoster.
type RosterProvider interface {
	Participants(ctx context.Context, classID int) ([]roster.Participant, error)
}

// LoadRosterInput carries input for the roster load.
type LoadRosterInput struct {
	ClassID int
}

// LoadRosterDeps holds dependencies for LoadRoster.
type LoadRosterDeps struct {
	Provider RosterProvider
	Index    *roster.Index
}

// LoadRosterResult carries the result of a successful load.
type LoadRosterResult struct {
	ParticipantCount int
}

// ExecuteLoadRoster fetches the class roster and swaps it into the index.
// A fetch failure leaves the previous index untouched; the caller is
// responsible for flipping its roster-loaded flag.
// PRE: ClassID identifies an existing class
// POST: On success the index resolves exactly the fetched participants
func ExecuteLoadRoster(ctx context.Context, input LoadRosterInput, deps LoadRosterDeps) (LoadRosterResult, error) {
	if input.ClassID <= 0 {
		return LoadRosterResult{}, errors.New("a class must be selected")
	}

	participants, err := deps.Provider.Participants(ctx, input.ClassID)
	if err != nil {
		slog.Warn("roster_event", "event", "roster_load_failed", "class_id", input.ClassID, "error", err)
		return LoadRosterResult{}, err
	}

	deps.Index.Load(participants)
	slog.Info("roster_event", "event", "roster_loaded", "class_id", input.ClassID, "count", len(participants))
	return LoadRosterResult{ParticipantCount: len(participants)}, nil
}
