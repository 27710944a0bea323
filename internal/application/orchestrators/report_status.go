package orchestrators

import (
	"context"
	"fmt"

	"rollcall/internal/adapters/notify"
	"rollcall/internal/domain/attendance"
)

// Notifications translates one outcome into the user-facing notifications.
// Pure mapping: no side effects, no sinks. An ignored scan produces nothing;
// the unvalidated outcome produces the warning followed by the form result.
func Notifications(o attendance.Outcome) []notify.Notification {
	switch o.Kind {
	case attendance.KindIgnored:
		return nil

	case attendance.KindNotEnrolled:
		return []notify.Notification{{
			Category: notify.CategoryAttention,
			Message:  o.ParticipantName + " is not registered in the course!",
		}}

	case attendance.KindAlreadyRecorded:
		return []notify.Notification{{
			Category: notify.CategoryAttention,
			Message:  o.ParticipantName + "'s attendance has been taken for this session.",
		}}

	case attendance.KindRecordedBoth:
		return []notify.Notification{{
			Category: notify.CategorySuccess,
			Message:  o.ParticipantName + " Attendance Recorded!",
		}}

	case attendance.KindRecordedPartial:
		// Phrased by the sink that still worked.
		if o.FailedSink == attendance.SinkForm {
			return []notify.Notification{{
				Category: notify.CategorySuccess,
				Message:  o.ParticipantName + " Attendance Recorded on cloud only.",
			}}
		}
		return []notify.Notification{{
			Category: notify.CategorySuccess,
			Message:  o.ParticipantName + " Attendance Recorded on Google only.",
		}}

	case attendance.KindRecordedNone:
		return []notify.Notification{{
			Category: notify.CategoryError,
			Message:  "Attendance was not recorded on Google or Cloud!",
		}}

	case attendance.KindRecordedUnvalidated:
		ns := []notify.Notification{{
			Category: notify.CategoryAttention,
			Message:  o.ParticipantName + " Attendance will be taken without validation!",
		}}
		if o.FormErr == nil {
			ns = append(ns, notify.Notification{
				Category: notify.CategorySuccess,
				Message:  o.ParticipantName + " Attendance Recorded!",
			})
		} else {
			ns = append(ns, notify.Notification{
				Category: notify.CategoryError,
				Message:  o.FormErr.Error(),
			})
		}
		return ns

	case attendance.KindCheckFailed:
		return []notify.Notification{{
			Category: notify.CategoryError,
			Message:  o.CheckErr.Error(),
		}}

	default:
		return []notify.Notification{{
			Category: notify.CategoryError,
			Message:  fmt.Sprintf("unknown outcome %q", o.Kind),
		}}
	}
}

// ReportStatusDeps holds dependencies for ReportStatus.
type ReportStatusDeps struct {
	Notifier notify.Notifier
}

// ExecuteReportStatus emits the notifications for one outcome.
// POST: All notifications are attempted; the first emit error is returned
func ExecuteReportStatus(ctx context.Context, outcome attendance.Outcome, deps ReportStatusDeps) error {
	var firstErr error
	for _, n := range Notifications(outcome) {
		if err := deps.Notifier.Notify(ctx, n); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
