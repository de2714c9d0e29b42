package services

import (
	"context"

	"github.com/dmitrijs2005/hasherdb/internal/logging"
	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

// DeletionReconciler reports, for each deleted asset, whether its content is
// still held by the same owner and which scanned files reference it.
// Ownerless assets get no remaining-asset count. It is
// the daemon's handler for the deletion poller.
type DeletionReconciler struct {
	identity *IdentityResolver
	logger   logging.Logger
}

func NewDeletionReconciler(identity *IdentityResolver, logger logging.Logger) *DeletionReconciler {
	return &DeletionReconciler{identity: identity, logger: logger}
}

// HandleDeletions resolves every entry; the first lookup error aborts the
// batch so the poller offers it again.
func (r *DeletionReconciler) HandleDeletions(ctx context.Context, entries []models.DeletionAuditEntry) error {
	for _, e := range entries {
		args := []any{
			"audit_id", e.ID,
			"asset_id", e.AssetID.String(),
			"user_id", e.UserID,
			"checksum", e.Checksum,
			"deleted_at", e.ChangedOn,
		}

		// assets.checksum is nullable
		if e.Checksum == "" {
			r.logger.Info(ctx, "asset deleted", args...)
			continue
		}

		// An empty owner would widen the lookup to every tenant.
		if e.UserID != "" {
			remaining, err := r.identity.FindAssetByChecksum(ctx, e.Checksum, e.UserID)
			if err != nil {
				return err
			}
			args = append(args, "remaining_assets", remaining.Count)
		}

		files, err := r.identity.FindExternalFilesByChecksum(ctx, e.Checksum)
		if err != nil {
			return err
		}

		args = append(args, "scanned_files", files.Count)
		r.logger.Info(ctx, "asset deleted", args...)
	}
	return nil
}
