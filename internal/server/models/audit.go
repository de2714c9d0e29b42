package models

import (
	"time"

	"github.com/google/uuid"
)

// DeletionAuditEntry is the before-image of a deleted asset, written by the
// delete trigger in the same transaction as the delete.
type DeletionAuditEntry struct {
	// ID is monotonic; consumers deduplicate overlapping polls by it.
	ID      int64     `json:"id" yaml:"id"`
	AssetID uuid.UUID `json:"asset_id" yaml:"asset_id"`
	UserID  string    `json:"user_id" yaml:"user_id"`
	// Checksum is lowercase hex of the checksum at delete time.
	Checksum  string    `json:"checksum" yaml:"checksum"`
	ChangedOn time.Time `json:"changed_on" yaml:"changed_on"`
}
