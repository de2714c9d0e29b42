package externalfiles

import (
	"context"

	"github.com/dmitrijs2005/hasherdb/internal/server/models"
)

type Repository interface {
	SelectByChecksum(ctx context.Context, checksum []byte) ([]models.ExternalFile, error)
}
