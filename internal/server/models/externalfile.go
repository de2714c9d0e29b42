package models

import "time"

// ExternalFile is a file tracked by the hasher in hasher_scanned_files.
type ExternalFile struct {
	ID        string    `json:"id" yaml:"id"`
	Path      string    `json:"path" yaml:"path"`
	ChangedOn time.Time `json:"changed_on" yaml:"changed_on"`
	// Checksum is lowercase hex.
	Checksum string `json:"checksum" yaml:"checksum"`
}

// ExternalFileMatches is the result of a checksum lookup on the file registry.
type ExternalFileMatches struct {
	Files []ExternalFile `json:"files" yaml:"files"`
	Count int            `json:"count" yaml:"count"`
}
