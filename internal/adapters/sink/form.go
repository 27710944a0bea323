package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"rollcall/internal/domain/attendance"
)

// FormClient records attendance against the spreadsheet-backed form endpoint.
// The participant name rides in the URL path; the response body is never
// interpreted, only transport/protocol success matters.
type FormClient struct {
	baseURL string
	client  *http.Client
}

// NewFormClient creates a form sink client.
// PRE: baseURL is the form endpoint prefix the name is appended to
// POST: Returns a client whose calls time out after the given duration
func NewFormClient(baseURL string, timeout time.Duration) *FormClient {
	return &FormClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Write submits the record to the form endpoint.
// PRE: rec names a participant
// POST: nil on 2xx; *Error on transport or protocol failure
func (c *FormClient) Write(ctx context.Context, rec attendance.Record) error {
	uri := c.baseURL + url.PathEscape(rec.ParticipantName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return &Error{Sink: attendance.SinkForm, Op: "write", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("sink_write_failed", "sink", attendance.SinkForm, "error", err)
		return &Error{Sink: attendance.SinkForm, Op: "write", Err: err}
	}
	defer resp.Body.Close()
	// The form endpoint's body is not part of the contract.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("sink_write_failed", "sink", attendance.SinkForm, "status", resp.StatusCode)
		return &Error{Sink: attendance.SinkForm, Op: "write", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	slog.Info("sink_write_ok", "sink", attendance.SinkForm, "participant", rec.ParticipantName)
	return nil
}
