package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rollcall/internal/adapters/authgw"
	web "rollcall/internal/adapters/http"
	"rollcall/internal/adapters/http/perf"
	"rollcall/internal/adapters/notify"
	"rollcall/internal/adapters/sink"
	"rollcall/internal/application/orchestrators"
	rosterdomain "rollcall/internal/domain/roster"
	"rollcall/internal/domain/scanlog"
)

type stubProvider struct {
	participants []rosterdomain.Participant
	err          error
}

func (s *stubProvider) Classes(context.Context) ([]rosterdomain.Class, error) {
	return []rosterdomain.Class{{ID: 3, Title: "Year One"}}, nil
}

func (s *stubProvider) Participants(context.Context, int) ([]rosterdomain.Participant, error) {
	return s.participants, s.err
}

func (s *stubProvider) Servants(context.Context) ([]rosterdomain.Servant, error) {
	return []rosterdomain.Servant{{ID: 9, FullName: "Pat Teacher"}}, nil
}

type stubGateway struct {
	op  authgw.Operator
	err error
}

func (s *stubGateway) Authenticate(context.Context, string, string) (authgw.Operator, error) {
	return s.op, s.err
}

type stubNotifier struct {
	got []notify.Notification
}

func (s *stubNotifier) Notify(_ context.Context, n notify.Notification) error {
	s.got = append(s.got, n)
	return nil
}

type stubScanLog struct {
	saved []scanlog.Entry
}

func (s *stubScanLog) Save(_ context.Context, e scanlog.Entry) error {
	s.saved = append(s.saved, e)
	return nil
}

func (s *stubScanLog) ListRecent(context.Context, int) ([]scanlog.Entry, error) {
	return s.saved, nil
}

type fixture struct {
	handler  http.Handler
	provider *stubProvider
	gateway  *stubGateway
	notifier *stubNotifier
	scanLog  *stubScanLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	web.RateLimitPerSecond = 1000

	idx := rosterdomain.NewIndex()
	provider := &stubProvider{participants: []rosterdomain.Participant{{ID: 7, FullName: "Jane Doe"}}}
	gateway := &stubGateway{op: authgw.Operator{ID: 9, FullName: "Pat Teacher"}}
	notifier := &stubNotifier{}
	scanLog := &stubScanLog{}

	coordinator := orchestrators.NewCoordinator(orchestrators.RecordAttendanceDeps{
		Roster:    idx,
		Guard:     orchestrators.Guard{Check: sink.NoopChecker{}},
		FormSink:  &sink.NoopWriter{Name: "form"},
		CloudSink: &sink.NoopWriter{Name: "cloud"},
	})

	return &fixture{
		handler: web.NewMux(web.Deps{
			Coordinator: coordinator,
			Roster:      idx,
			Provider:    provider,
			Gateway:     gateway,
			Notifier:    notifier,
			ScanLog:     scanLog,
			Perf:        perf.NewCollector(100),
		}),
		provider: provider,
		gateway:  gateway,
		notifier: notifier,
		scanLog:  scanLog,
	}
}

func (f *fixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	return body
}

// TestHandleLogin tests operator authentication over the API.
func TestHandleLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/login", `{"username":"pat","password":"secret"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		body := decodeBody(t, rec)
		if body["operator_id"] != float64(9) || body["full_name"] != "Pat Teacher" {
			t.Errorf("unexpected body: %v", body)
		}
	})

	t.Run("bad credentials", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.err = authgw.ErrInvalidCredentials
		rec := f.do(t, http.MethodPost, "/api/login", `{"username":"pat","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Invalid Username or Password" {
			t.Errorf("unexpected error message: %v", body["error"])
		}
	})

	t.Run("gateway unreachable", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.err = errors.New("connection refused")
		rec := f.do(t, http.MethodPost, "/api/login", `{"username":"pat","password":"secret"}`)
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/login", "not json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

// TestHandleSelectSession tests class and session selection with the roster
// load that follows.
func TestHandleSelectSession(t *testing.T) {
	t.Run("valid selection loads roster", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":1}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
		}
		body := decodeBody(t, rec)
		if body["roster_loaded"] != true {
			t.Error("expected roster_loaded true")
		}
		if body["participant_count"] != float64(1) {
			t.Errorf("expected participant_count 1, got %v", body["participant_count"])
		}
		if len(f.notifier.got) == 0 || f.notifier.got[0].Message != "Ready to scan for attendance." {
			t.Errorf("expected ready notification, got %v", f.notifier.got)
		}
	})

	t.Run("roster failure still selects, degraded", func(t *testing.T) {
		f := newFixture(t)
		f.provider.err = errors.New("roster service unavailable")
		rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":1}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["roster_loaded"] != false {
			t.Error("expected roster_loaded false after a failed load")
		}
	})

	t.Run("session out of range", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":3}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("missing class", func(t *testing.T) {
		f := newFixture(t)
		rec := f.do(t, http.MethodPost, "/api/session", `{"session_id":1}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

// TestHandleScan tests the scan endpoint end to end with a loaded roster.
func TestHandleScan(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":1}`); rec.Code != http.StatusOK {
		t.Fatalf("session selection failed: %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/api/scan", `{"text":"Jane+Doe"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	body := decodeBody(t, rec)
	if body["outcome"] != "recorded_both" {
		t.Errorf("expected recorded_both, got %v", body["outcome"])
	}
	if body["recorded"] != true {
		t.Error("expected recorded true")
	}
	notifications, ok := body["notifications"].([]any)
	if !ok || len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %v", body["notifications"])
	}

	if len(f.scanLog.saved) != 1 {
		t.Fatalf("expected the scan journaled, got %d entries", len(f.scanLog.saved))
	}
	entry := f.scanLog.saved[0]
	if entry.ParticipantID != 7 || entry.ClassID != 3 || entry.SessionID != 1 {
		t.Errorf("journal entry incomplete: %+v", entry)
	}
}

// TestHandleScan_UnknownName tests a scan for a name not on the roster.
func TestHandleScan_UnknownName(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":1}`); rec.Code != http.StatusOK {
		t.Fatalf("session selection failed: %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/api/scan", `{"text":"John+Smith"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["outcome"] != "not_enrolled" {
		t.Errorf("expected not_enrolled, got %v", body["outcome"])
	}
	if body["recorded"] != false {
		t.Error("expected recorded false")
	}
}

// TestHandleScan_EmptyText tests that an empty payload is a quiet no-op.
func TestHandleScan_EmptyText(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/scan", `{"text":""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["outcome"] != "ignored" {
		t.Errorf("expected ignored, got %v", body["outcome"])
	}
	if notifications := body["notifications"].([]any); len(notifications) != 0 {
		t.Errorf("expected no notifications, got %v", notifications)
	}
	if len(f.scanLog.saved) != 0 {
		t.Error("an ignored scan must not be journaled")
	}
}

// TestHandleListScans tests the journal listing endpoint.
func TestHandleListScans(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/api/session", `{"class_id":3,"session_id":1}`); rec.Code != http.StatusOK {
		t.Fatalf("session selection failed: %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/api/scan", `{"text":"Jane+Doe"}`); rec.Code != http.StatusOK {
		t.Fatalf("scan failed: %d", rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/api/scans", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var entries []map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&entries); err != nil {
		t.Fatalf("response did not decode: %v", err)
	}
	if len(entries) != 1 || entries[0]["participant_name"] != "Jane Doe" {
		t.Errorf("unexpected entries: %v", entries)
	}

	if rec := f.do(t, http.MethodGet, "/api/scans?limit=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed limit, got %d", rec.Code)
	}
}

// TestHandlePerf tests the timing aggregate endpoint.
func TestHandlePerf(t *testing.T) {
	f := newFixture(t)
	if rec := f.do(t, http.MethodPost, "/api/scan", `{"text":""}`); rec.Code != http.StatusOK {
		t.Fatalf("scan failed: %d", rec.Code)
	}

	rec := f.do(t, http.MethodGet, "/api/perf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	total, ok := body["TotalRequests"].(float64)
	if !ok || total < 1 {
		t.Errorf("expected at least one recorded request, got %v", body["TotalRequests"])
	}

	if rec := f.do(t, http.MethodGet, "/api/perf?minutes=abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed minutes value, got %d", rec.Code)
	}
}

// TestHandleHealth tests the liveness endpoint.
func TestHandleHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
