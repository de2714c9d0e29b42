// Package audits reads and provisions the asset deletion audit log.
package audits

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hasherdb/internal/checksum"
	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

// createTableQuery mirrors the first migration so a table dropped after
// goose recorded it is recreated on the next provision.
const createTableQuery = `
	CREATE TABLE IF NOT EXISTS ` + common.AuditTable + ` (
		id INT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		asset_id UUID NOT NULL,
		user_id VARCHAR(256) NULL,
		checksum BYTEA,
		changed_on TIMESTAMP(6) NOT NULL
	)
`

const createIndexQuery = `
	CREATE INDEX IF NOT EXISTS ` + common.AuditTable + `_changed_on_idx
		ON ` + common.AuditTable + ` (changed_on)
`

// Audit timestamps are UTC wall-clock on both the write (trigger) and read
// (poll) side, so sessions with different TimeZone settings agree.
const createFunctionQuery = `
	CREATE OR REPLACE FUNCTION ` + common.AuditFunction + `()
		RETURNS TRIGGER
		LANGUAGE PLPGSQL
		AS
	$$
	BEGIN
		INSERT INTO ` + common.AuditTable + `(asset_id, user_id, checksum, changed_on)
		VALUES(OLD.id, OLD."userId", OLD.checksum, NOW() AT TIME ZONE 'UTC');
		RETURN OLD;
	END;
	$$
`

const createTriggerQuery = `
	CREATE OR REPLACE TRIGGER ` + common.AuditTrigger + `
	BEFORE DELETE ON ` + common.AssetsTable + `
	FOR EACH ROW
	EXECUTE FUNCTION ` + common.AuditFunction + `()
`

// PostgresRepository implements the audit log over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureTable creates the audit table and its changed_on index when they
// are missing. Existing rows are left alone.
func (r *PostgresRepository) EnsureTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create audit table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createIndexQuery); err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

// InstallTrigger creates or replaces the trigger function and binds it to
// fire before every row delete on assets. Run it inside a transaction so
// the pair is replaced atomically.
func (r *PostgresRepository) InstallTrigger(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFunctionQuery); err != nil {
		return fmt.Errorf("create trigger function: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTriggerQuery); err != nil {
		return fmt.Errorf("create trigger: %w", err)
	}
	return nil
}

// TableExists reports whether the audit table is visible on the search path.
func (r *PostgresRepository) TableExists(ctx context.Context) (bool, error) {
	query := `SELECT to_regclass($1) IS NOT NULL`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, common.AuditTable).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// CountTriggers returns how many audit triggers are bound to assets.
func (r *PostgresRepository) CountTriggers(ctx context.Context) (int, error) {
	query := `
		SELECT COUNT(*) FROM pg_trigger t
		JOIN pg_class c ON c.oid = t.tgrelid
		WHERE c.relname = $1 AND t.tgname = $2 AND NOT t.tgisinternal
	`

	var n int
	if err := r.db.QueryRowContext(ctx, query, common.AssetsTable, common.AuditTrigger).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// SelectRecent returns audit entries newer than now - lookback, oldest first.
// Physical order of the table is not insertion order, hence the ORDER BY.
func (r *PostgresRepository) SelectRecent(ctx context.Context, lookback time.Duration) ([]models.DeletionAuditEntry, error) {
	query := `
		SELECT id, asset_id, user_id, checksum, changed_on
		FROM assets_delete_audits
		WHERE changed_on > ((NOW() AT TIME ZONE 'UTC') - make_interval(secs => $1))
		ORDER BY changed_on ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, lookback.Seconds())
	if err != nil {
		return nil, fmt.Errorf("failed to select deletions: %w", err)
	}
	defer rows.Close()

	result := make([]models.DeletionAuditEntry, 0)
	for rows.Next() {
		var (
			item   models.DeletionAuditEntry
			userID sql.NullString
			sum    []byte
		)
		if err := rows.Scan(&item.ID, &item.AssetID, &userID, &sum, &item.ChangedOn); err != nil {
			return nil, err
		}
		item.UserID = userID.String
		item.Checksum = checksum.ToHex(sum)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
