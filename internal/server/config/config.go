// Package config handles configuration for the hasherdb daemon and CLI,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds runtime settings.
//
// Fields:
//   - DatabaseName, Host, Port, Username, Password, SSLMode: Postgres session
//     of the primary asset database.
//   - DeletionLookback: how far back each reconciliation poll reads the
//     deletion audit log. Must exceed PollInterval plus commit skew.
//   - PollInterval: delay between reconciliation polls.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DatabaseName     string
	Host             string
	Port             int
	Username         string
	Password         string
	SSLMode          string
	DeletionLookback time.Duration
	PollInterval     time.Duration
	LogLevel         string
}

// LoadDefaults populates Config with development defaults matching a stock
// Immich installation.
func (c *Config) LoadDefaults() {
	c.DatabaseName = "immich"
	c.Host = "127.0.0.1"
	c.Port = 5432
	c.Username = "postgres"
	c.Password = "postgres"
	c.SSLMode = "disable"
	c.DeletionLookback = 2 * time.Minute
	c.PollInterval = 1 * time.Minute
	c.LogLevel = "info"
}

// DSN renders the connection settings as a postgres:// URL accepted by pgx.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.DatabaseName,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	ApplyEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// LoadBase builds a Config from defaults, an optional JSON file and the
// environment, leaving flag handling to the caller (the CLI binds its own).
func LoadBase(jsonPath string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if jsonPath != "" {
		if err := ApplyJSONFile(cfg, jsonPath); err != nil {
			return nil, err
		}
	}
	ApplyEnv(cfg)
	return cfg, nil
}
