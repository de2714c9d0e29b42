package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/assets"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/audits"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/externalfiles"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeUsersRepo struct {
	ids []string
	err error
}

func (f *fakeUsersRepo) SelectIDs(context.Context) ([]string, error) {
	return f.ids, f.err
}

type fakeAssetsRepo struct {
	rows []models.AssetMatch
	err  error

	calls     int
	gotSum    []byte
	gotUserID string
}

func (f *fakeAssetsRepo) SelectByChecksum(_ context.Context, sum []byte, userID string) ([]models.AssetMatch, error) {
	f.calls++
	f.gotSum = sum
	f.gotUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	var out []models.AssetMatch
	for _, r := range f.rows {
		if userID == "" || r.UserID == userID {
			out = append(out, r)
		}
	}
	if out == nil {
		out = []models.AssetMatch{}
	}
	return out, nil
}

type fakeFilesRepo struct {
	rows []models.ExternalFile
	err  error

	calls  int
	gotSum []byte
}

func (f *fakeFilesRepo) SelectByChecksum(_ context.Context, sum []byte) ([]models.ExternalFile, error) {
	f.calls++
	f.gotSum = sum
	return f.rows, f.err
}

type fakeAuditsRepo struct {
	ensureErr  error
	ensures    int
	ensureNoop bool

	installErr error
	installs   int
	installTx  bool

	exists    bool
	existsErr error

	triggers    int
	triggersErr error

	recent      []models.DeletionAuditEntry
	recentErr   error
	gotLookback time.Duration
	selects     int
}

// EnsureTable creates the table unless ensureNoop simulates a DDL that
// silently did nothing.
func (f *fakeAuditsRepo) EnsureTable(context.Context) error {
	f.ensures++
	if f.ensureErr != nil {
		return f.ensureErr
	}
	if !f.ensureNoop {
		f.exists = true
	}
	return nil
}

func (f *fakeAuditsRepo) InstallTrigger(context.Context) error {
	f.installs++
	return f.installErr
}

func (f *fakeAuditsRepo) TableExists(context.Context) (bool, error) {
	return f.exists, f.existsErr
}

func (f *fakeAuditsRepo) CountTriggers(context.Context) (int, error) {
	return f.triggers, f.triggersErr
}

func (f *fakeAuditsRepo) SelectRecent(_ context.Context, lookback time.Duration) ([]models.DeletionAuditEntry, error) {
	f.selects++
	f.gotLookback = lookback
	return f.recent, f.recentErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	a  *fakeAssetsRepo
	f  *fakeFilesRepo
	au *fakeAuditsRepo

	migrateErr error
	migrations int
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	m.migrations++
	return m.migrateErr
}
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) Assets(dbx.DBTX) assets.Repository               { return m.a }
func (m *fakeRepoManager) ExternalFiles(dbx.DBTX) externalfiles.Repository { return m.f }

func (m *fakeRepoManager) Audits(db dbx.DBTX) audits.Repository {
	if _, ok := db.(*sql.Tx); ok && m.au != nil {
		m.au.installTx = true
	}
	return m.au
}
