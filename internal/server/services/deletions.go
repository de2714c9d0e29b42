package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/dmitrijs2005/hasherdb/internal/dbx"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
	"github.com/dmitrijs2005/hasherdb/internal/server/repositories/repomanager"
)

// DeletionReader serves the polling change feed over the audit log.
type DeletionReader struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDeletionReader(db *sql.DB, m repomanager.RepositoryManager) *DeletionReader {
	return &DeletionReader{db: db, repomanager: m}
}

// ListRecentDeletions returns audit entries with changed_on later than
// now - lookback, oldest first, checksums hex-encoded.
//
// Delivery is at-least-once: overlapping polls return the same entry again
// and callers deduplicate by entry ID. Nothing is skipped as long as callers
// poll more often than lookback minus commit skew.
func (s *DeletionReader) ListRecentDeletions(ctx context.Context, lookback time.Duration) ([]models.DeletionAuditEntry, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrInvalidLookback, lookback)
	}

	entries, err := s.repomanager.Audits(s.db).SelectRecent(ctx, lookback)
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return entries, nil
}
