// Package models defines the typed records read from the asset database.
package models

import "github.com/google/uuid"

// AssetMatch is one asset row that carries a looked-up checksum.
type AssetMatch struct {
	AssetID uuid.UUID `json:"asset_id" yaml:"asset_id"`
	// UserID is the owner; empty for system assets.
	UserID string `json:"user_id" yaml:"user_id"`
}

// AssetMatches is the result of a checksum lookup on the asset table.
type AssetMatches struct {
	Assets []AssetMatch `json:"assets" yaml:"assets"`
	Count  int          `json:"count" yaml:"count"`
}
