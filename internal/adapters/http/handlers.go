package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rollcall/internal/adapters/notify"
	"rollcall/internal/application/orchestrators"
)

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleHealth answers liveness probes.
func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLogin authenticates the operator and remembers them for scans.
func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}, orchestrators.LoginDeps{Gateway: a.deps.Gateway})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid Username or Password")
			return
		}
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	a.state.mu.Lock()
	a.state.operatorID = result.OperatorID
	a.state.operatorName = result.FullName
	a.state.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"operator_id": result.OperatorID,
		"full_name":   result.FullName,
	})
}

// handleClasses lists the selectable classes from the roster service.
func (a *API) handleClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := a.deps.Provider.Classes(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// handleServants lists the operators from the roster service.
func (a *API) handleServants(w http.ResponseWriter, r *http.Request) {
	servants, err := a.deps.Provider.Servants(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, servants)
}

// handleSelectSession selects class and session and loads that class roster.
// A roster load failure still selects the class but leaves the device in
// degraded mode: scans record without validation until a reload succeeds.
func (a *API) handleSelectSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClassID   int `json:"class_id"`
		SessionID int `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.SessionID != 1 && req.SessionID != 2 {
		writeError(w, http.StatusBadRequest, "session must be 1 or 2")
		return
	}
	if req.ClassID <= 0 {
		writeError(w, http.StatusBadRequest, "a class must be selected")
		return
	}

	a.state.mu.Lock()
	a.state.classID = req.ClassID
	a.state.sessionID = req.SessionID
	a.state.mu.Unlock()

	a.loadRoster(w, r, req.ClassID)
}

// handleReloadRoster refreshes the roster for the currently selected class.
func (a *API) handleReloadRoster(w http.ResponseWriter, r *http.Request) {
	a.state.mu.Lock()
	classID := a.state.classID
	a.state.mu.Unlock()

	if classID <= 0 {
		writeError(w, http.StatusBadRequest, "a class must be selected")
		return
	}
	a.loadRoster(w, r, classID)
}

// loadRoster loads the class roster and updates the roster-loaded flag.
func (a *API) loadRoster(w http.ResponseWriter, r *http.Request, classID int) {
	result, err := orchestrators.ExecuteLoadRoster(r.Context(), orchestrators.LoadRosterInput{
		ClassID: classID,
	}, orchestrators.LoadRosterDeps{Provider: a.deps.Provider, Index: a.deps.Roster})

	a.state.mu.Lock()
	a.state.rosterLoaded = err == nil
	a.state.mu.Unlock()

	if err != nil {
		_ = a.deps.Notifier.Notify(r.Context(), notify.Notification{
			Category: notify.CategoryError,
			Message:  err.Error(),
		})
		writeJSON(w, http.StatusOK, map[string]any{
			"roster_loaded": false,
			"error":         err.Error(),
		})
		return
	}

	_ = a.deps.Notifier.Notify(r.Context(), notify.Notification{
		Category: notify.CategoryReady,
		Message:  "Ready to scan for attendance.",
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"roster_loaded":     true,
		"participant_count": result.ParticipantCount,
	})
}

// handleScan processes one decoded QR payload through the coordinator.
func (a *API) handleScan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sctx, rosterLoaded := a.state.snapshot()

	outcome, err := a.deps.Coordinator.Process(r.Context(), orchestrators.RecordAttendanceInput{
		ScanText:     req.Text,
		RosterLoaded: rosterLoaded,
		Session:      sctx,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrScannerBusy) {
			writeError(w, http.StatusConflict, "scanner busy")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	notifications := orchestrators.Notifications(outcome)
	_ = orchestrators.ExecuteReportStatus(r.Context(), outcome, orchestrators.ReportStatusDeps{
		Notifier: a.deps.Notifier,
	})
	orchestrators.ExecuteJournalScan(r.Context(), req.Text, sctx, outcome, orchestrators.JournalScanDeps{
		Store: a.deps.ScanLog,
	})

	type wireNotification struct {
		Category string `json:"category"`
		Message  string `json:"message"`
	}
	wire := make([]wireNotification, 0, len(notifications))
	for _, n := range notifications {
		wire = append(wire, wireNotification{Category: string(n.Category), Message: n.Message})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"outcome":       string(outcome.Kind),
		"recorded":      outcome.Recorded(),
		"notifications": wire,
	})
}

// handleListScans returns recent journal entries for operator review.
func (a *API) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := a.deps.ScanLog.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	type wireEntry struct {
		ID              string `json:"id"`
		ScannedAt       string `json:"scanned_at"`
		ScanText        string `json:"scan_text"`
		ParticipantID   int    `json:"participant_id"`
		ParticipantName string `json:"participant_name"`
		ClassID         int    `json:"class_id"`
		SessionID       int    `json:"session_id"`
		OperatorID      int    `json:"operator_id"`
		Outcome         string `json:"outcome"`
		Detail          string `json:"detail"`
	}
	wire := make([]wireEntry, 0, len(entries))
	for _, e := range entries {
		wire = append(wire, wireEntry{
			ID:              e.ID,
			ScannedAt:       e.ScannedAt.Format("2006-01-02T15:04:05Z07:00"),
			ScanText:        e.ScanText,
			ParticipantID:   e.ParticipantID,
			ParticipantName: e.ParticipantName,
			ClassID:         e.ClassID,
			SessionID:       e.SessionID,
			OperatorID:      e.OperatorID,
			Outcome:         e.Outcome,
			Detail:          e.Detail,
		})
	}
	writeJSON(w, http.StatusOK, wire)
}

// handlePerf reports request and query timing aggregates.
func (a *API) handlePerf(w http.ResponseWriter, r *http.Request) {
	if a.deps.Perf == nil {
		writeError(w, http.StatusNotFound, "perf collection is disabled")
		return
	}

	minutes := 60
	if v := r.URL.Query().Get("minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "minutes must be a positive integer")
			return
		}
		minutes = n
	}

	snap := a.deps.Perf.Snapshot(time.Now().Add(-time.Duration(minutes)*time.Minute), 10)
	writeJSON(w, http.StatusOK, snap)
}
