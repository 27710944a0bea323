package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. An optional
// .env file in the working directory is loaded first.
type Config struct {
	Env  string
	Addr string

	DBPath string

	// Remote sinks. An empty URL wires the noop implementation.
	FormSinkURL  string
	CloudSinkURL string
	CheckSinkURL string

	// Roster service endpoints.
	ClassesURL      string
	ParticipantsURL string
	ServantsURL     string

	// Authentication gateway.
	AuthURL          string
	CredentialSecret string
	CredentialSalt   string

	// Escalation email (Resend). Empty key disables escalation.
	ResendKey string
	AlertFrom string
	AlertTo   string

	SinkTimeout       time.Duration
	LenientEmptyCheck bool
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ROLLCALL_ENV", "development"),
		Addr: getEnv("ROLLCALL_ADDR", ":8080"),

		DBPath: getEnv("ROLLCALL_DB_PATH", "rollcall.db"),

		FormSinkURL:  getEnv("ROLLCALL_FORM_SINK_URL", ""),
		CloudSinkURL: getEnv("ROLLCALL_CLOUD_SINK_URL", ""),
		CheckSinkURL: getEnv("ROLLCALL_CHECK_SINK_URL", ""),

		ClassesURL:      getEnv("ROLLCALL_CLASSES_URL", ""),
		ParticipantsURL: getEnv("ROLLCALL_PARTICIPANTS_URL", ""),
		ServantsURL:     getEnv("ROLLCALL_SERVANTS_URL", ""),

		AuthURL:          getEnv("ROLLCALL_AUTH_URL", ""),
		CredentialSecret: getEnv("ROLLCALL_CREDENTIAL_SECRET", ""),
		CredentialSalt:   getEnv("ROLLCALL_CREDENTIAL_SALT", "rollcall"),

		ResendKey: getEnv("ROLLCALL_RESEND_KEY", ""),
		AlertFrom: getEnv("ROLLCALL_ALERT_FROM", "Rollcall <alerts@rollcall.local>"),
		AlertTo:   getEnv("ROLLCALL_ALERT_TO", ""),

		SinkTimeout:       getDuration("ROLLCALL_SINK_TIMEOUT", 10*time.Second),
		LenientEmptyCheck: getBool("ROLLCALL_LENIENT_EMPTY_CHECK", true),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
