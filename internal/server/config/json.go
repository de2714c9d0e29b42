package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/hasherdb/internal/flagx"
	"github.com/dmitrijs2005/hasherdb/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations use
// timex.Duration so both "2m" and integer nanoseconds are accepted.
// Zero values are treated as "not set" and leave the target untouched.
type JsonConfig struct {
	DatabaseName     string         `json:"database_name"`
	Host             string         `json:"host"`
	Port             int            `json:"port"`
	Username         string         `json:"username"`
	Password         string         `json:"password"`
	SSLMode          string         `json:"sslmode"`
	DeletionLookback timex.Duration `json:"deletion_lookback"`
	PollInterval     timex.Duration `json:"poll_interval"`
	LogLevel         string         `json:"log_level"`
}

// parseJson loads the file named by the -c or -config flag, if any, into
// config. It panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	if err := ApplyJSONFile(config, jsonConfigFile); err != nil {
		panic(err)
	}
}

// ApplyJSONFile overlays the non-zero values of a JSON config file.
func ApplyJSONFile(config *Config, path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if c.DatabaseName != "" {
		config.DatabaseName = c.DatabaseName
	}
	if c.Host != "" {
		config.Host = c.Host
	}
	if c.Port != 0 {
		config.Port = c.Port
	}
	if c.Username != "" {
		config.Username = c.Username
	}
	if c.Password != "" {
		config.Password = c.Password
	}
	if c.SSLMode != "" {
		config.SSLMode = c.SSLMode
	}
	if c.DeletionLookback.Duration != 0 {
		config.DeletionLookback = c.DeletionLookback.Duration
	}
	if c.PollInterval.Duration != 0 {
		config.PollInterval = c.PollInterval.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}

	return nil
}
