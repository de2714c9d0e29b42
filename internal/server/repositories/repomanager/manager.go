package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/assets"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/audits"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/externalfiles"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// repository can run on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Assets(db dbx.DBTX) assets.Repository
	ExternalFiles(db dbx.DBTX) externalfiles.Repository
	Audits(db dbx.DBTX) audits.Repository
}
