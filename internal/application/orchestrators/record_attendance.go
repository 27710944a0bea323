package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"rollcall/internal/adapters/sink"
	"rollcall/internal/domain/attendance"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
)

// ErrScannerBusy is returned when a scan arrives while a previous scan is
// still being processed. The scan is dropped at the boundary.
var ErrScannerBusy = errors.New("a scan is already being processed")

// DuplicateChecker decides whether attendance already exists for this
// participant, class, session and date.
type DuplicateChecker interface {
	AlreadyRecorded(ctx context.Context, participantID int, sctx session.Context) (bool, error)
}

// RecordAttendanceInput carries one decoded scan and the context it runs in.
type RecordAttendanceInput struct {
	ScanText     string // raw decoded QR payload, '+' encodes a space
	RosterLoaded bool
	Session      session.Context
}

// RecordAttendanceDeps holds dependencies for RecordAttendance.
type RecordAttendanceDeps struct {
	Roster    *roster.Index
	Guard     DuplicateChecker
	FormSink  sink.Writer
	CloudSink sink.Writer
	Now       func() time.Time // nil means time.Now
}

// ExecuteRecordAttendance processes one scan to a classified outcome:
// resolve the participant, check for a duplicate, then write both sinks.
// Every path terminates in an outcome; nothing here is fatal.
// PRE: deps are wired; Session is the immutable snapshot for this scan
// POST: No sink is touched after NotEnrolled, AlreadyRecorded or CheckFailed
// INVARIANT: the duplicate check strictly precedes any write
func ExecuteRecordAttendance(ctx context.Context, input RecordAttendanceInput, deps RecordAttendanceDeps) attendance.Outcome {
	if input.ScanText == "" {
		return attendance.Outcome{Kind: attendance.KindIgnored}
	}

	now := deps.Now
	if now == nil {
		now = time.Now
	}

	sctx := input.Session
	if sctx.Date.IsZero() {
		sctx.Date = now()
	}

	name := decodeScanName(input.ScanText)

	// Degraded path: no roster, no validation, no duplicate check. Only the
	// form sink is attempted, matching the original behaviour.
	if !input.RosterLoaded {
		rec := attendance.Record{
			ParticipantName: name,
			ClassID:         sctx.ClassID,
			SessionID:       sctx.SessionID,
			OperatorID:      sctx.OperatorID,
			Date:            sctx.Date,
		}
		err := deps.FormSink.Write(ctx, rec)
		slog.Info("scan_event", "event", "recorded_unvalidated", "name", name, "form_ok", err == nil)
		return attendance.Outcome{
			Kind:            attendance.KindRecordedUnvalidated,
			ParticipantName: name,
			FormErr:         err,
		}
	}

	// The resolved ID stays authoritative for the rest of this call even if
	// the roster is swapped concurrently.
	participantID, ok := deps.Roster.Lookup(name)
	if !ok {
		slog.Info("scan_event", "event", "not_enrolled", "name", name)
		return attendance.Outcome{Kind: attendance.KindNotEnrolled, ParticipantName: name}
	}

	already, err := deps.Guard.AlreadyRecorded(ctx, participantID, sctx)
	if err != nil {
		slog.Warn("scan_event", "event", "duplicate_check_failed", "name", name, "error", err)
		return attendance.Outcome{
			Kind:            attendance.KindCheckFailed,
			ParticipantID:   participantID,
			ParticipantName: name,
			CheckErr:        err,
		}
	}
	if already {
		slog.Info("scan_event", "event", "already_recorded", "name", name)
		return attendance.Outcome{
			Kind:            attendance.KindAlreadyRecorded,
			ParticipantID:   participantID,
			ParticipantName: name,
		}
	}

	rec := attendance.Record{
		ParticipantID:   participantID,
		ParticipantName: name,
		ClassID:         sctx.ClassID,
		SessionID:       sctx.SessionID,
		OperatorID:      sctx.OperatorID,
		Date:            sctx.Date,
	}

	// Both writes are always attempted: one sink failing must not prevent the
	// other. Dispatch concurrently and join before classifying.
	var wg sync.WaitGroup
	var formErr, cloudErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		formErr = deps.FormSink.Write(ctx, rec)
	}()
	go func() {
		defer wg.Done()
		cloudErr = deps.CloudSink.Write(ctx, rec)
	}()
	wg.Wait()

	outcome := attendance.Outcome{
		ParticipantID:   participantID,
		ParticipantName: name,
		FormErr:         formErr,
		CloudErr:        cloudErr,
	}
	switch {
	case formErr == nil && cloudErr == nil:
		outcome.Kind = attendance.KindRecordedBoth
	case formErr == nil:
		outcome.Kind = attendance.KindRecordedPartial
		outcome.FailedSink = attendance.SinkCloud
	case cloudErr == nil:
		outcome.Kind = attendance.KindRecordedPartial
		outcome.FailedSink = attendance.SinkForm
	default:
		outcome.Kind = attendance.KindRecordedNone
	}

	slog.Info("scan_event", "event", "recorded", "name", name,
		"participant_id", participantID, "outcome", string(outcome.Kind))
	return outcome
}

// decodeScanName turns the raw QR payload into a display name. The payloads
// carry '+' for spaces.
func decodeScanName(scanText string) string {
	b := []byte(scanText)
	for i, c := range b {
		if c == '+' {
			b[i] = ' '
		}
	}
	return string(b)
}

// Coordinator gates attendance recording so only one scan is in flight at a
// time. A scan arriving while busy is rejected; the caller decides how to
// surface that (the scanner UI simply stays armed).
type Coordinator struct {
	deps RecordAttendanceDeps
	busy atomic.Bool

	// OnBusy, when set, mirrors the in-flight state to the external UI sink.
	OnBusy func(bool)
}

// NewCoordinator creates a Coordinator over the given dependencies.
func NewCoordinator(deps RecordAttendanceDeps) *Coordinator {
	return &Coordinator{deps: deps}
}

// Process runs one scan through ExecuteRecordAttendance under the busy gate.
// POST: Returns ErrScannerBusy without side effects if a scan is in flight
func (c *Coordinator) Process(ctx context.Context, input RecordAttendanceInput) (attendance.Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		slog.Warn("scan_event", "event", "scan_dropped_busy")
		return attendance.Outcome{}, ErrScannerBusy
	}
	defer c.busy.Store(false)

	if c.OnBusy != nil {
		c.OnBusy(true)
		defer c.OnBusy(false)
	}

	return ExecuteRecordAttendance(ctx, input, c.deps), nil
}
