// Package cli implements hasherctl, the operator tool that runs each
// hasherdb operation once against the primary asset database.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/config"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hasherdb/internal/server/services"
)

// offline marks commands that never touch the database.
const offline = "offline"

var (
	// Global flags
	configPath   string
	outputFormat string
	dbName       string
	dbHost       string
	dbPort       int
	dbUser       string
	dbPassword   string
	dbSSLMode    string
	logLevel     string
	askPassword  bool

	cfg    *config.Config
	db     *sql.DB
	logger logging.Logger

	// Services
	provisioner *services.SchemaProvisioner
	identity    *services.IdentityResolver
	deletions   *services.DeletionReader
)

// openDB is a seam for tests.
var openDB = dbx.Open

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hasherctl",
	Short: "Inspect and provision the hasher side of the asset database",
	Long: `hasherctl runs hasherdb operations one at a time: provisioning the
deletion audit trigger, reading recent deletions and resolving checksums to
assets and scanned files.

Connection settings come from defaults, an optional JSON file (--config),
the DB_* environment variables and finally the --db-* flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	pf.StringVarP(&outputFormat, "output", "o", formatJSON, "Output format (json, yaml)")
	pf.StringVar(&dbName, "db-name", "", "Database name")
	pf.StringVar(&dbHost, "db-host", "", "Database host")
	pf.IntVar(&dbPort, "db-port", 0, "Database port")
	pf.StringVar(&dbUser, "db-user", "", "Database user")
	pf.StringVar(&dbPassword, "db-password", "", "Database password")
	pf.StringVar(&dbSSLMode, "db-sslmode", "", "Postgres sslmode")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVar(&askPassword, "ask-password", false, "Prompt for the database password")

	// Add subcommands
	rootCmd.AddCommand(provisionCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(deletionsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(checksumCmd)
}

func initializeApp(cmd *cobra.Command, args []string) error {
	if err := validateFormat(outputFormat); err != nil {
		return err
	}

	c, err := config.LoadBase(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, c)
	cfg = c

	if cmd.Annotations[offline] == "true" {
		return nil
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if askPassword {
		pw, err := promptPassword(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg.Password = pw
	}

	logger = logging.New(cmd.ErrOrStderr(), logging.FormatText, level)

	conn, err := openDB(cmd.Context(), cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Host, err)
	}
	db = conn

	m := repomanager.NewPostgresRepositoryManager()
	provisioner = services.NewSchemaProvisioner(db, m, logger)
	identity = services.NewIdentityResolver(db, m)
	deletions = services.NewDeletionReader(db, m)

	return nil
}

// applyFlags overlays only the connection flags the user actually set.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	f := cmd.Flags()
	if f.Changed("db-name") {
		c.DatabaseName = dbName
	}
	if f.Changed("db-host") {
		c.Host = dbHost
	}
	if f.Changed("db-port") {
		c.Port = dbPort
	}
	if f.Changed("db-user") {
		c.Username = dbUser
	}
	if f.Changed("db-password") {
		c.Password = dbPassword
	}
	if f.Changed("db-sslmode") {
		c.SSLMode = dbSSLMode
	}
	if f.Changed("log-level") {
		c.LogLevel = logLevel
	}
}

func closeApp() {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil && logger != nil {
		logger.Error(context.Background(), "db close error", "error", err)
	}
	db = nil
}
