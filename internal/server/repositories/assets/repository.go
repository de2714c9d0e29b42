package assets

import (
	"context"

	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

type Repository interface {
	SelectByChecksum(ctx context.Context, checksum []byte, userID string) ([]models.AssetMatch, error)
}
