package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "modernc.org/sqlite"

	"rollcall/internal/adapters/authgw"
	"rollcall/internal/adapters/email"
	web "rollcall/internal/adapters/http"
	"rollcall/internal/adapters/http/perf"
	"rollcall/internal/adapters/notify"
	rosterProvider "rollcall/internal/adapters/roster"
	"rollcall/internal/adapters/sink"
	"rollcall/internal/adapters/storage"
	scanlogStore "rollcall/internal/adapters/storage/scanlog"
	"rollcall/internal/application/orchestrators"
	"rollcall/internal/config"
	"rollcall/internal/crypto"
	"rollcall/internal/domain/attendance"
	"rollcall/internal/domain/roster"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg := config.Load()

	// Scan journal database with WAL mode and busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Request and query timings feed the perf endpoint.
	collector := perf.NewCollector(perf.DefaultRingSize)
	journal := scanlogStore.NewSQLiteStore(storage.NewTimedDB(db, collector))

	// Remote sinks: noop when unconfigured so a dev instance runs standalone
	var formSink sink.Writer = &sink.NoopWriter{Name: attendance.SinkForm}
	if cfg.FormSinkURL != "" {
		formSink = sink.NewFormClient(cfg.FormSinkURL, cfg.SinkTimeout)
	} else {
		log.Println("WARNING: ROLLCALL_FORM_SINK_URL is not set — form sink writes are no-ops")
	}

	var cloudSink sink.Writer = &sink.NoopWriter{Name: attendance.SinkCloud}
	if cfg.CloudSinkURL != "" {
		cloudSink = sink.NewCloudClient(cfg.CloudSinkURL, cfg.SinkTimeout)
	} else {
		log.Println("WARNING: ROLLCALL_CLOUD_SINK_URL is not set — cloud sink writes are no-ops")
	}

	var checker sink.Checker = sink.NoopChecker{}
	if cfg.CheckSinkURL != "" {
		check := sink.NewCheckClient(cfg.CheckSinkURL, cfg.SinkTimeout)
		check.LenientEmptyBody = cfg.LenientEmptyCheck
		checker = check
	} else {
		log.Println("WARNING: ROLLCALL_CHECK_SINK_URL is not set — duplicate checks always report zero")
	}

	// Roster service and authentication gateway
	provider := rosterProvider.NewHTTPProvider(cfg.ClassesURL, cfg.ParticipantsURL, cfg.ServantsURL, cfg.SinkTimeout)

	var gateway authgw.Gateway
	if cfg.AuthURL != "" && cfg.CredentialSecret != "" {
		cipher, err := crypto.NewCipher(cfg.CredentialSecret, cfg.CredentialSalt)
		if err != nil {
			log.Fatalf("failed to build credential cipher: %v", err)
		}
		gateway = authgw.NewHTTPGateway(cfg.AuthURL, cipher, cfg.SinkTimeout)
	} else {
		if cfg.Env == "production" {
			log.Fatal("ROLLCALL_AUTH_URL and ROLLCALL_CREDENTIAL_SECRET are required in production")
		}
		gateway = authgw.DevGateway{}
		log.Println("WARNING: auth gateway not configured — any credentials log in as operator 0")
	}

	// Notifications: structured log always; email escalation when configured
	var notifier notify.Notifier = notify.NewSlogNotifier()
	if cfg.AlertTo != "" {
		var sender email.Sender = email.NewNoopSender()
		if cfg.ResendKey != "" {
			sender = email.NewResendSender(cfg.ResendKey, cfg.AlertFrom)
			log.Println("Error escalation configured (Resend)")
		} else {
			log.Println("WARNING: ROLLCALL_RESEND_KEY is not set — error escalation mails are no-ops")
		}
		notifier = notify.MultiNotifier{
			notifier,
			notify.NewEmailEscalator(sender, cfg.AlertTo),
		}
	}

	index := roster.NewIndex()
	coordinator := orchestrators.NewCoordinator(orchestrators.RecordAttendanceDeps{
		Roster:    index,
		Guard:     orchestrators.Guard{Check: checker},
		FormSink:  formSink,
		CloudSink: cloudSink,
	})

	mux := web.NewMux(web.Deps{
		Coordinator: coordinator,
		Roster:      index,
		Provider:    provider,
		Gateway:     gateway,
		Notifier:    notifier,
		ScanLog:     journal,
		Perf:        collector,
	})

	log.Printf("Rollcall %s starting on %s (env=%s)", version, cfg.Addr, cfg.Env)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
