package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"rollcall/internal/domain/attendance"
)

// cloudPayload is the create-record body the cloud database endpoint expects.
// Field names and the short-form date text are a fixed external contract.
type cloudPayload struct {
	ParticipantID  int    `json:"Fk_Participant_Id"`
	ClassID        int    `json:"Fk_Class_Id"`
	SessionID      int    `json:"Fk_Session_Id"`
	UserID         int    `json:"Fk_User_Id"`
	AttendanceDate string `json:"Attendance_Date"`
}

// CloudClient records attendance against the cloud database endpoint.
type CloudClient struct {
	url    string
	client *http.Client
}

// NewCloudClient creates a cloud sink client.
// PRE: url is the create-record endpoint
// POST: Returns a client whose calls time out after the given duration
func NewCloudClient(url string, timeout time.Duration) *CloudClient {
	return &CloudClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Write posts the serialized record to the cloud endpoint.
// PRE: rec carries the resolved participant ID and session context
// POST: nil on 2xx; *Error on transport or protocol failure
func (c *CloudClient) Write(ctx context.Context, rec attendance.Record) error {
	body, err := json.Marshal(cloudPayload{
		ParticipantID:  rec.ParticipantID,
		ClassID:        rec.ClassID,
		SessionID:      rec.SessionID,
		UserID:         rec.OperatorID,
		AttendanceDate: rec.DateText(),
	})
	if err != nil {
		return &Error{Sink: attendance.SinkCloud, Op: "write", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &Error{Sink: attendance.SinkCloud, Op: "write", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("sink_write_failed", "sink", attendance.SinkCloud, "error", err)
		return &Error{Sink: attendance.SinkCloud, Op: "write", Err: err}
	}
	defer resp.Body.Close()
	// The cloud endpoint's body is not part of the contract.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("sink_write_failed", "sink", attendance.SinkCloud, "status", resp.StatusCode)
		return &Error{Sink: attendance.SinkCloud, Op: "write", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	slog.Info("sink_write_ok", "sink", attendance.SinkCloud, "participant_id", rec.ParticipantID)
	return nil
}
