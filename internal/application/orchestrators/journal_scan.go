package orchestrators

import (
	"context"
	"log/slog"
	"time"

	scanlogStore "rollcall/internal/adapters/storage/scanlog"
	"rollcall/internal/domain/attendance"
	"rollcall/internal/domain/scanlog"
	"rollcall/internal/domain/session"

	"github.com/google/uuid"
)

// JournalScanDeps holds dependencies for JournalScan.
type JournalScanDeps struct {
	Store      scanlogStore.Store
	GenerateID func() string    // nil means uuid
	Now        func() time.Time // nil means time.Now
}

// ExecuteJournalScan records one processed scan in the local journal. The
// journal is an audit trail for operator review; a journal failure never
// affects the scan's outcome, it is only logged.
// PRE: outcome came from ExecuteRecordAttendance for this scan
// POST: Entry persisted, or a warning logged
func ExecuteJournalScan(ctx context.Context, scanText string, sctx session.Context, outcome attendance.Outcome, deps JournalScanDeps) {
	if outcome.Kind == attendance.KindIgnored {
		return
	}

	generateID := deps.GenerateID
	if generateID == nil {
		generateID = func() string { return uuid.New().String() }
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	entry := scanlog.Entry{
		ID:              generateID(),
		ScannedAt:       now(),
		ScanText:        scanText,
		ParticipantID:   outcome.ParticipantID,
		ParticipantName: outcome.ParticipantName,
		ClassID:         sctx.ClassID,
		SessionID:       sctx.SessionID,
		OperatorID:      sctx.OperatorID,
		Outcome:         string(outcome.Kind),
		Detail:          outcomeDetail(outcome),
	}

	if err := entry.Validate(); err != nil {
		slog.Warn("journal_event", "event", "entry_invalid", "error", err)
		return
	}
	if err := deps.Store.Save(ctx, entry); err != nil {
		slog.Warn("journal_event", "event", "journal_write_failed", "error", err)
	}
}

// outcomeDetail summarizes sink failures for the journal.
func outcomeDetail(o attendance.Outcome) string {
	switch {
	case o.CheckErr != nil:
		return o.CheckErr.Error()
	case o.FormErr != nil && o.CloudErr != nil:
		return "form: " + o.FormErr.Error() + "; cloud: " + o.CloudErr.Error()
	case o.FormErr != nil:
		return "form: " + o.FormErr.Error()
	case o.CloudErr != nil:
		return "cloud: " + o.CloudErr.Error()
	default:
		return ""
	}
}
