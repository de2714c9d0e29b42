package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
	"github.com/jackc/pgx/v5/pgconn"
)

// SchemaProvisioner installs the deletion audit table and trigger.
type SchemaProvisioner struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewSchemaProvisioner(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *SchemaProvisioner {
	return &SchemaProvisioner{db: db, repomanager: m, logger: logger}
}

// Provision makes sure the audit table exists and exactly one delete trigger
// mirrors assets into it. It is idempotent and meant to run on every start.
//
// The table is versioned by goose and also created if missing on every
// call, so a table dropped behind goose's back comes back. The trigger
// function and binding are replaced in the same transaction, so a
// primary-system migration that recreated assets gets its trigger back. Deletions that
// happened before the trigger existed are not backfilled.
//
// Every failure wraps common.ErrSchemaProvisioning and should stop startup.
func (s *SchemaProvisioner) Provision(ctx context.Context) error {
	if err := s.repomanager.RunMigrations(ctx, s.db); err != nil {
		return s.fail(ctx, "migrate audit table", err)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Audits(tx)
		if err := repo.EnsureTable(ctx); err != nil {
			return err
		}
		return repo.InstallTrigger(ctx)
	})
	if err != nil {
		return s.fail(ctx, "install trigger", err)
	}

	repo := s.repomanager.Audits(s.db)

	exists, err := repo.TableExists(ctx)
	if err != nil {
		return s.fail(ctx, "verify audit table", err)
	}
	if !exists {
		return s.fail(ctx, "verify audit table", fmt.Errorf("table %s not found", common.AuditTable))
	}

	n, err := repo.CountTriggers(ctx)
	if err != nil {
		return s.fail(ctx, "verify trigger", err)
	}
	if n != 1 {
		return s.fail(ctx, "verify trigger", fmt.Errorf("want 1 trigger %s on %s, found %d", common.AuditTrigger, common.AssetsTable, n))
	}

	s.logger.Info(ctx, "audit schema provisioned", "table", common.AuditTable, "trigger", common.AuditTrigger)
	return nil
}

func (s *SchemaProvisioner) fail(ctx context.Context, step string, err error) error {
	args := []any{"step", step, "error", err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		args = append(args, "sqlstate", pgErr.Code)
	}
	s.logger.Error(ctx, "schema provisioning failed", args...)

	return fmt.Errorf("%w: %s: %w", common.ErrSchemaProvisioning, step, dbx.Classify(err))
}
