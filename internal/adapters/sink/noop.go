package sink

import (
	"context"
	"log/slog"
	"time"

	"rollcall/internal/domain/attendance"
)

// NoopWriter is a no-op sink for development and testing. It logs writes but
// records nothing remotely.
type NoopWriter struct {
	Name string
}

// Write logs the record but does not deliver it.
// PRE: rec is a valid Record
// POST: Returns nil without any remote effect
func (w *NoopWriter) Write(_ context.Context, rec attendance.Record) error {
	slog.Info("noop_sink_write", "sink", w.Name, "participant", rec.ParticipantName, "date", rec.DateText())
	return nil
}

// NoopChecker is a no-op duplicate check that always reports zero records.
type NoopChecker struct{}

// CountRecorded logs the query and reports no existing records.
func (NoopChecker) CountRecorded(_ context.Context, participantID, classID, sessionID int, date time.Time) (int, error) {
	slog.Info("noop_sink_check", "participant_id", participantID, "class_id", classID, "session_id", sessionID, "date", date.Format(attendance.DateLayout))
	return 0, nil
}
