package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rollcall/internal/domain/attendance"
)

// CheckClient queries the duplicate-check endpoint. The response body is
// either empty or a bare integer count as text.
type CheckClient struct {
	url    string
	client *http.Client

	// LenientEmptyBody controls how an empty response body is read. When true
	// (the default) it counts as zero, favouring re-recording over mistakenly
	// skipping a participant. When false an empty body is a malformed
	// response.
	LenientEmptyBody bool
}

// NewCheckClient creates a duplicate-check client with the lenient
// empty-body policy.
// PRE: endpoint is the query URL without parameters
// POST: Returns a client whose calls time out after the given duration
func NewCheckClient(endpoint string, timeout time.Duration) *CheckClient {
	return &CheckClient{
		url:              endpoint,
		client:           &http.Client{Timeout: timeout},
		LenientEmptyBody: true,
	}
}

// CountRecorded asks the sink how many attendance records already exist for
// the participant in the given class, session and date.
// PRE: participantID was resolved from the loaded roster
// POST: Returns the count; *Error on transport, protocol or parse failure
func (c *CheckClient) CountRecorded(ctx context.Context, participantID, classID, sessionID int, date time.Time) (int, error) {
	q := url.Values{}
	q.Set("participant_id", strconv.Itoa(participantID))
	q.Set("class_id", strconv.Itoa(classID))
	q.Set("session_id", strconv.Itoa(sessionID))
	q.Set("date", date.Format(attendance.DateLayout))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+q.Encode(), nil)
	if err != nil {
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("sink_check_failed", "sink", attendance.SinkCheck, "error", err)
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("sink_check_failed", "sink", attendance.SinkCheck, "status", resp.StatusCode)
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: err}
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		if c.LenientEmptyBody {
			return 0, nil
		}
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: fmt.Errorf("empty response body")}
	}

	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, &Error{Sink: attendance.SinkCheck, Op: "count", Err: fmt.Errorf("malformed count %q", text)}
	}
	return count, nil
}
