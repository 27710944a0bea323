package roster

import (
	"context"

	"rollcall/internal/domain/roster"
)

// Provider is the interface to the remote roster service.
type Provider interface {
	// Classes lists the selectable classes.
	Classes(ctx context.Context) ([]roster.Class, error)

	// Participants lists the enrolled participants for one class.
	// PRE: classID identifies an existing class
	// POST: Returns the full roster for that class
	Participants(ctx context.Context, classID int) ([]roster.Participant, error)

	// Servants lists the operators allowed to run the scanner.
	Servants(ctx context.Context) ([]roster.Servant, error)
}
