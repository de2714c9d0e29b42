package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyEnv(t *testing.T) {
	t.Run("all set", func(t *testing.T) {
		stubEnv(t, map[string]string{
			EnvDatabaseName:     "photos",
			EnvHost:             "db",
			EnvPort:             "6543",
			EnvUsername:         "hasher",
			EnvPassword:         "secret",
			EnvSSLMode:          "require",
			EnvDeletionLookback: "5m",
			EnvPollInterval:     "30s",
			EnvLogLevel:         "debug",
		})

		var c Config
		c.LoadDefaults()
		ApplyEnv(&c)

		assert.Equal(t, Config{
			DatabaseName:     "photos",
			Host:             "db",
			Port:             6543,
			Username:         "hasher",
			Password:         "secret",
			SSLMode:          "require",
			DeletionLookback: 5 * time.Minute,
			PollInterval:     30 * time.Second,
			LogLevel:         "debug",
		}, c)
	})

	t.Run("absent and malformed keep defaults", func(t *testing.T) {
		stubEnv(t, map[string]string{
			EnvHost:             "",
			EnvPort:             "not-a-port",
			EnvDeletionLookback: "later",
			EnvPollInterval:     "-1m",
		})

		var c, want Config
		c.LoadDefaults()
		want.LoadDefaults()
		ApplyEnv(&c)

		assert.Equal(t, want, c)
	})
}
