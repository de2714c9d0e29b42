package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/hasherdb/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string     database name
//	-a string     database host
//	-P int        database port
//	-u string     database user
//	-p string     database password
//	-s string     sslmode
//	-l duration   deletion lookback window (e.g. "2m")
//	-i duration   poll interval (e.g. "1m")
//	-L string     log level (debug, info, warn, error)
//
// os.Args is filtered with flagx.FilterArgs first so the -c/-config flag
// handled by parseJson does not collide with these.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], "d", "a", "P", "u", "p", "s", "l", "i", "L")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseName, "d", config.DatabaseName, "database name")
	fs.StringVar(&config.Host, "a", config.Host, "database host")
	fs.IntVar(&config.Port, "P", config.Port, "database port")
	fs.StringVar(&config.Username, "u", config.Username, "database user")
	fs.StringVar(&config.Password, "p", config.Password, "database password")
	fs.StringVar(&config.SSLMode, "s", config.SSLMode, "database sslmode")
	fs.DurationVar(&config.DeletionLookback, "l", config.DeletionLookback, "deletion lookback window")
	fs.DurationVar(&config.PollInterval, "i", config.PollInterval, "reconciliation poll interval")
	fs.StringVar(&config.LogLevel, "L", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
