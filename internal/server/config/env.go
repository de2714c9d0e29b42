package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names. The DB_* names are shared with the Immich
// server so one .env file serves both.
const (
	EnvDatabaseName     = "DB_DATABASE_NAME"
	EnvHost             = "DB_HOSTNAME"
	EnvPort             = "DB_PORT"
	EnvUsername         = "DB_USERNAME"
	EnvPassword         = "DB_PASSWORD"
	EnvSSLMode          = "DB_SSLMODE"
	EnvDeletionLookback = "HASHER_DELETION_LOOKBACK"
	EnvPollInterval     = "HASHER_POLL_INTERVAL"
	EnvLogLevel         = "HASHER_LOG_LEVEL"
)

// lookupEnv is a seam for tests.
var lookupEnv = os.LookupEnv

// ApplyEnv overlays config values from the environment. Unset or empty
// variables keep the current value; so do malformed numbers and durations,
// because absence is never an error at this layer.
func ApplyEnv(config *Config) {
	setString(&config.DatabaseName, EnvDatabaseName)
	setString(&config.Host, EnvHost)
	setString(&config.Username, EnvUsername)
	setString(&config.Password, EnvPassword)
	setString(&config.SSLMode, EnvSSLMode)
	setString(&config.LogLevel, EnvLogLevel)

	if v, ok := lookupEnv(EnvPort); ok && v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Port = port
		}
	}

	setDuration(&config.DeletionLookback, EnvDeletionLookback)
	setDuration(&config.PollInterval, EnvPollInterval)
}

func setString(dst *string, name string) {
	if v, ok := lookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, name string) {
	v, ok := lookupEnv(name)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		*dst = d
	}
}
