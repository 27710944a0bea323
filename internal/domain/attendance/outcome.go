package attendance

// Kind classifies the result of processing one scan.
type Kind string

const (
	// KindIgnored means the scan text was empty and nothing happened.
	KindIgnored Kind = "ignored"
	// KindNotEnrolled means the name is absent from the loaded roster.
	KindNotEnrolled Kind = "not_enrolled"
	// KindAlreadyRecorded means attendance exists for this session and date.
	KindAlreadyRecorded Kind = "already_recorded"
	// KindRecordedBoth means both sink writes succeeded.
	KindRecordedBoth Kind = "recorded_both"
	// KindRecordedPartial means exactly one sink write succeeded.
	KindRecordedPartial Kind = "recorded_partial"
	// KindRecordedNone means neither sink write succeeded.
	KindRecordedNone Kind = "recorded_none"
	// KindRecordedUnvalidated means the roster was not loaded and only the
	// form sink was attempted.
	KindRecordedUnvalidated Kind = "recorded_unvalidated"
	// KindCheckFailed means the duplicate check itself failed; no write was
	// attempted. Distinct from "checked, found none".
	KindCheckFailed Kind = "check_failed"
)

// Sink names used in outcomes and sink errors.
const (
	SinkForm  = "form"
	SinkCloud = "cloud"
	SinkCheck = "check"
)

// Outcome is the single classified result of one processed scan. Produced by
// the coordinator, consumed immediately by the status reporter, never stored.
type Outcome struct {
	Kind            Kind
	ParticipantID   int
	ParticipantName string
	FailedSink      string // set for KindRecordedPartial: SinkForm or SinkCloud
	FormErr         error  // form write failure, if any
	CloudErr        error  // cloud write failure, if any
	CheckErr        error  // duplicate check failure for KindCheckFailed
}

// Recorded reports whether this outcome wrote attendance to at least one sink.
func (o Outcome) Recorded() bool {
	switch o.Kind {
	case KindRecordedBoth, KindRecordedPartial:
		return true
	case KindRecordedUnvalidated:
		return o.FormErr == nil
	default:
		return false
	}
}
