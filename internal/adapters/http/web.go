package web

import (
	"net/http"
	"sync"
	"time"

	"rollcall/internal/adapters/authgw"
	"rollcall/internal/adapters/http/middleware"
	"rollcall/internal/adapters/http/perf"
	"rollcall/internal/adapters/notify"
	rosterProvider "rollcall/internal/adapters/roster"
	scanlogStore "rollcall/internal/adapters/storage/scanlog"
	"rollcall/internal/application/orchestrators"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
)

// Deps holds everything the API needs.
type Deps struct {
	Coordinator *orchestrators.Coordinator
	Roster      *roster.Index
	Provider    rosterProvider.Provider
	Gateway     authgw.Gateway
	Notifier    notify.Notifier
	ScanLog     scanlogStore.Store
	Perf        *perf.Collector // nil disables the perf endpoint
}

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// appState is the scanner device's current selection: operator, class and
// session, plus whether the roster for that class loaded. One device, one
// state; a scan snapshots it into an immutable session.Context.
type appState struct {
	mu           sync.Mutex
	operatorID   int
	operatorName string
	classID      int
	sessionID    int
	rosterLoaded bool
}

// snapshot returns the context for one scan plus the roster-loaded flag.
func (s *appState) snapshot() (session.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return session.Context{
		ClassID:    s.classID,
		SessionID:  s.sessionID,
		OperatorID: s.operatorID,
	}, s.rosterLoaded
}

// API carries the handlers' dependencies and device state.
type API struct {
	deps  Deps
	state appState
}

// NewMux wires the JSON API with its middleware chain.
func NewMux(deps Deps) http.Handler {
	api := &API{deps: deps}
	api.state.sessionID = 1 // session 1 until the operator changes it

	mux := http.NewServeMux()
	api.registerRoutes(mux)

	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(deps.Perf),
	)
}

// registerRoutes attaches all API routes.
func (a *API) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", a.handleHealth)
	mux.HandleFunc("POST /api/login", a.handleLogin)
	mux.HandleFunc("GET /api/classes", a.handleClasses)
	mux.HandleFunc("GET /api/servants", a.handleServants)
	mux.HandleFunc("POST /api/session", a.handleSelectSession)
	mux.HandleFunc("POST /api/roster/reload", a.handleReloadRoster)
	mux.HandleFunc("POST /api/scan", a.handleScan)
	mux.HandleFunc("GET /api/scans", a.handleListScans)
	mux.HandleFunc("GET /api/perf", a.handlePerf)
}
