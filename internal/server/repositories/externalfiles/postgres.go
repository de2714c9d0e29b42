// Package externalfiles reads the hasher's file registry. The registry is
// owned by the hasher service; this package only matches against it.
package externalfiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hasherdb/internal/checksum"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectByChecksum returns every scanned file whose binary checksum equals sum.
func (r *PostgresRepository) SelectByChecksum(ctx context.Context, sum []byte) ([]models.ExternalFile, error) {
	query := `SELECT id, asset_path, changed_on, checksum FROM hasher_scanned_files
		WHERE checksum = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, sum)
	if err != nil {
		return nil, fmt.Errorf("failed to select scanned files: %w", err)
	}
	defer rows.Close()

	result := make([]models.ExternalFile, 0)
	for rows.Next() {
		var (
			item models.ExternalFile
			raw  []byte
		)
		if err := rows.Scan(&item.ID, &item.Path, &item.ChangedOn, &raw); err != nil {
			return nil, err
		}
		item.Checksum = checksum.ToHex(raw)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
