package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables
	"time"    // time parses duration values
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; sensible defaults keep a bare local environment
// working. The NS_MARIADB_* names come from the deployment platform that
// provisions the database.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DBUser          string        // database username
	DBPass          string        // database password (optional)
	DBHost          string        // database host address
	DBPort          string        // database port number
	DBName          string        // database name
	FrontendOrigin  string        // deployed frontend origin for the catch-all redirect
	CORSOrigins     []string      // origins allowed by the CORS middleware
	SlotAPIBase     string        // booking platform origin for the slot-listing API
	SlotAPITimeout  time.Duration // timeout for slot-listing calls
	FetchTimeout    time.Duration // timeout for the generic fetch-html proxy
	IdentityHeaders []string      // trusted headers carrying the username, in priority order
}

// Load reads configuration values from environment variables and returns a
// Config. Every value has a default so the service starts without a fully
// populated environment.
func Load() Config {
	return Config{
		Env:             envStr("APP_ENV", "dev"),
		Port:            envStr("APP_PORT", "3000"),
		DBUser:          envStr("NS_MARIADB_USER", "scheduler_app_user"),
		DBPass:          os.Getenv("NS_MARIADB_PASSWORD"), // empty allowed
		DBHost:          envStr("NS_MARIADB_HOSTNAME", "localhost"),
		DBPort:          envStr("NS_MARIADB_PORT", "3306"),
		DBName:          envStr("NS_MARIADB_DATABASE", "schedule_app_db"),
		FrontendOrigin:  envStr("FRONTEND_ORIGIN", "https://nazotoki-scheduler.trap.show/"),
		CORSOrigins:     envList("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
		SlotAPIBase:     envStr("SLOT_API_BASE", "https://escape.id"),
		SlotAPITimeout:  envDur("SLOT_API_TIMEOUT", 20*time.Second),
		FetchTimeout:    envDur("FETCH_HTML_TIMEOUT", 10*time.Second),
		IdentityHeaders: envList("IDENTITY_HEADERS", "X-Forwarded-User,X-Showcase-User"),
	}
}

// envStr returns the value of an environment variable or a default when the
// variable is unset or empty.
func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// envList splits a comma-separated environment variable into trimmed parts.
func envList(k, d string) []string {
	raw := envStr(k, d)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// envInt parses an integer environment variable, falling back on a default.
func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

// envBool parses a boolean environment variable, falling back on a default.
func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

// envDur parses a duration environment variable, falling back on a default.
func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
