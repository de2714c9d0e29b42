// Package checksum converts content hashes between the hex form used by the
// hasher service and the raw binary form stored in the database.
//
// Two checksums are equal iff their binary forms are byte-identical; hex is
// only a presentation, so upper case input is accepted and output is always
// lower case.
package checksum

import (
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/hasherdb/internal/common"
)

// ToBinary decodes a hex checksum into its binary form.
//
// It fails with common.ErrInvalidChecksumFormat when s is empty, has an odd
// number of digits, or contains a non-hex character.
func ToBinary(s string) ([]byte, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty checksum", common.ErrInvalidChecksumFormat)
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length %d", common.ErrInvalidChecksumFormat, len(s))
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidChecksumFormat, err)
	}

	return b, nil
}

// ToHex encodes b as lowercase hex, two digits per byte.
func ToHex(b []byte) string {
	return hex.EncodeToString(b)
}

// Normalize returns the canonical (lowercase) form of a hex checksum.
func Normalize(s string) (string, error) {
	b, err := ToBinary(s)
	if err != nil {
		return "", err
	}
	return ToHex(b), nil
}

// PostgresLiteral renders b as a bytea escape literal (`\x...`).
// Queries pass []byte parameters directly; this form is for logs and
// hand-written SQL only.
func PostgresLiteral(b []byte) string {
	return `\x` + hex.EncodeToString(b)
}
