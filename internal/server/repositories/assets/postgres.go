// Package assets reads the primary asset table. The table is owned by the
// primary system; this package never writes to it.
package assets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectByChecksum returns (id, owner) of every asset with the given binary
// checksum. A non-empty userID restricts the match to that owner.
func (r *PostgresRepository) SelectByChecksum(ctx context.Context, checksum []byte, userID string) ([]models.AssetMatch, error) {
	var (
		rows *sql.Rows
		err  error
	)

	if userID != "" {
		query := `SELECT id, "userId" FROM assets WHERE checksum = $1 AND "userId" = $2`
		rows, err = r.db.QueryContext(ctx, query, checksum, userID)
	} else {
		query := `SELECT id, "userId" FROM assets WHERE checksum = $1`
		rows, err = r.db.QueryContext(ctx, query, checksum)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select assets: %w", err)
	}
	defer rows.Close()

	result := make([]models.AssetMatch, 0)
	for rows.Next() {
		var (
			item  models.AssetMatch
			owner sql.NullString
		)
		if err := rows.Scan(&item.AssetID, &owner); err != nil {
			return nil, err
		}
		item.UserID = owner.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
