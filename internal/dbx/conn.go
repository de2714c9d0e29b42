package dbx

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/stdlib"
)

// openDB is a seam for tests; it must not touch the network.
var openDB = func(cfg *pgx.ConnConfig) *sql.DB {
	return stdlib.OpenDB(*cfg)
}

// Open parses dsn, opens a pgx-backed *sql.DB and verifies it with a ping.
// The returned handle is owned by the caller and must be closed at shutdown.
// Any failure is reported as common.ErrConnection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parse dsn: %w", common.ErrConnection, err)
	}

	db := openDB(cfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %w", common.ErrConnection, err)
	}

	return db, nil
}

// IsConnectionError reports whether err means the session itself is gone,
// as opposed to a query that the server rejected.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, common.ErrConnection) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// Classify tags connection loss with common.ErrConnection and returns every
// other error unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, common.ErrConnection) {
		return err
	}
	if IsConnectionError(err) {
		return fmt.Errorf("%w: %w", common.ErrConnection, err)
	}
	return err
}
