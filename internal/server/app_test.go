package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/config"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingManager fails migrations so Run stops at provisioning.
type failingManager struct {
	*repomanager.PostgresRepositoryManager
}

func (failingManager) RunMigrations(context.Context, *sql.DB) error {
	return errors.New("permission denied")
}

func TestNewApp_OpenError(t *testing.T) {
	orig := openDB
	openDB = func(context.Context, string) (*sql.DB, error) {
		return nil, common.ErrConnection
	}
	t.Cleanup(func() { openDB = orig })

	var c config.Config
	c.LoadDefaults()

	app, err := NewApp(context.Background(), &c)
	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, common.ErrConnection)
}

func TestNewApp_InvalidLogLevel(t *testing.T) {
	orig := openDB
	openDB = func(context.Context, string) (*sql.DB, error) {
		t.Fatal("database must not be opened with a bad config")
		return nil, nil
	}
	t.Cleanup(func() { openDB = orig })

	var c config.Config
	c.LoadDefaults()
	c.LogLevel = "chatty"

	app, err := NewApp(context.Background(), &c)
	require.Error(t, err)
	assert.Nil(t, app)
}

func TestRun_ProvisioningFailureIsFatal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	var c config.Config
	c.LoadDefaults()

	var buf bytes.Buffer
	app := newApp(&c, logging.New(&buf, logging.FormatText, slog.LevelInfo), db, failingManager{&repomanager.PostgresRepositoryManager{}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = app.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchemaProvisioning)
	assert.Contains(t, buf.String(), "schema provisioning failed")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSignalHandler_StopReleasesWatcher(t *testing.T) {
	app := &App{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := app.initSignalHandler(ctx, cancel)

	done := make(chan struct{})
	go func() {
		stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stop did not return")
	}
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestInitSignalHandler_SignalCancels(t *testing.T) {
	app := &App{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := app.initSignalHandler(ctx, cancel)
	defer stop()

	require.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGINT))

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("signal did not cancel the context")
	}
}
