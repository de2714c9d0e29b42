package audits

import (
	"context"
	"time"

	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

type Repository interface {
	EnsureTable(ctx context.Context) error
	InstallTrigger(ctx context.Context) error
	TableExists(ctx context.Context) (bool, error)
	CountTriggers(ctx context.Context) (int, error)
	SelectRecent(ctx context.Context, lookback time.Duration) ([]models.DeletionAuditEntry, error)
}
