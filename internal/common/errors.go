// Package common defines shared constants and sentinel errors used across
// the hasherdb components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Connection-level errors (session unavailable, lost mid-query).
	ErrConnection = errors.New("database connection error")

	// Input validation errors, raised before any query is sent.
	ErrInvalidChecksumFormat = errors.New("invalid checksum format")
	ErrInvalidLookback       = errors.New("invalid lookback window")

	// Startup errors. Reconciliation is unsafe without the audit trigger,
	// so callers treat this as fatal.
	ErrSchemaProvisioning = errors.New("schema provisioning error")
)
