package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/hasherdb/internal/checksum"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
)

// IdentityResolver answers "who has content with this checksum" across the
// asset table and the hasher's file registry. Checksums come in as hex and
// are validated before any query runs.
type IdentityResolver struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIdentityResolver(db *sql.DB, m repomanager.RepositoryManager) *IdentityResolver {
	return &IdentityResolver{db: db, repomanager: m}
}

// FindExternalFilesByChecksum returns scanned files with the given checksum.
// No match is an empty result, not an error.
func (s *IdentityResolver) FindExternalFilesByChecksum(ctx context.Context, hexSum string) (*models.ExternalFileMatches, error) {
	sum, err := checksum.ToBinary(hexSum)
	if err != nil {
		return nil, err
	}

	files, err := s.repomanager.ExternalFiles(s.db).SelectByChecksum(ctx, sum)
	if err != nil {
		return nil, dbx.Classify(err)
	}

	return &models.ExternalFileMatches{Files: files, Count: len(files)}, nil
}

// FindAssetByChecksum returns assets with the given checksum. When userID is
// non-empty only that owner's assets are returned, so a lookup never reveals
// that another tenant holds the same content.
func (s *IdentityResolver) FindAssetByChecksum(ctx context.Context, hexSum string, userID string) (*models.AssetMatches, error) {
	sum, err := checksum.ToBinary(hexSum)
	if err != nil {
		return nil, err
	}

	matches, err := s.repomanager.Assets(s.db).SelectByChecksum(ctx, sum, userID)
	if err != nil {
		return nil, dbx.Classify(err)
	}

	return &models.AssetMatches{Assets: matches, Count: len(matches)}, nil
}

// ListUserIDs enumerates every asset owner.
func (s *IdentityResolver) ListUserIDs(ctx context.Context) ([]string, error) {
	ids, err := s.repomanager.Users(s.db).SelectIDs(ctx)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return ids, nil
}
