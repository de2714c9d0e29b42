// Package server wires the hasherdb daemon: it opens the database session,
// provisions the deletion audit trigger, and runs the reconciliation poller
// until the process is signalled to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/config"
	"github.com/dmitrijs2005/hasherdb/internal/server/poller"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hasherdb/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	provisioner *services.SchemaProvisioner
	deletions   *services.DeletionReader
	reconciler  *services.DeletionReconciler
}

// openDB is a seam for tests.
var openDB = dbx.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stdout, logging.FormatJSON, level)

	db, err := openDB(ctx, c.DSN())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return newApp(c, logger, db, repomanager.NewPostgresRepositoryManager()), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, m repomanager.RepositoryManager) *App {
	identity := services.NewIdentityResolver(db, m)

	return &App{
		config:      c,
		logger:      logger,
		db:          db,
		provisioner: services.NewSchemaProvisioner(db, m, logger),
		deletions:   services.NewDeletionReader(db, m),
		reconciler:  services.NewDeletionReconciler(identity, logger),
	}
}

// initSignalHandler cancels ctx on SIGINT, SIGTERM or SIGQUIT. The returned
// stop func unregisters the signals and waits for the watcher to exit.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) (stop func()) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigs)
		cancelFunc()
		<-done
	}
}

// Run provisions the audit schema and polls deletions until ctx is done or
// a termination signal arrives. A provisioning failure is returned before
// the poller starts.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	defer app.close(ctx)

	app.logger.Info(ctx, "Starting app...", "database", app.config.DatabaseName, "host", app.config.Host)

	stopSignals := app.initSignalHandler(ctx, cancelFunc)
	defer stopSignals()

	if err := app.provisioner.Provision(ctx); err != nil {
		return err
	}

	p, err := poller.New(app.deletions, app.reconciler, app.logger, app.config.PollInterval, app.config.DeletionLookback)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := p.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
	return nil
}

func (app *App) close(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
