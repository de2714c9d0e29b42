package checksum

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/hasherdb/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinary_RoundTrip(t *testing.T) {
	tests := []string{
		"aabb",
		"AABB",
		"00",
		"0001ff",
		"da39a3ee5e6b4b0d3255bfef95601890afd80709",
		strings.Repeat("Ab", 32),
	}

	for _, h := range tests {
		t.Run(h, func(t *testing.T) {
			b, err := ToBinary(h)
			require.NoError(t, err)
			assert.Len(t, b, len(h)/2)
			assert.Equal(t, strings.ToLower(h), ToHex(b))
		})
	}
}

func TestToBinary_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "odd length", in: "abc"},
		{name: "single digit", in: "a"},
		{name: "non hex", in: "zz"},
		{name: "whitespace", in: "aa bb"},
		{name: "escape prefix", in: `\xaabb`},
		{name: "0x prefix", in: "0xaabb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ToBinary(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, common.ErrInvalidChecksumFormat), "got %v", err)
			assert.Nil(t, b)
		})
	}
}

func TestToHex_ExactLength(t *testing.T) {
	assert.Equal(t, "", ToHex(nil))
	assert.Equal(t, "000a", ToHex([]byte{0x00, 0x0a}))
	assert.Equal(t, "ff00ff", ToHex([]byte{0xff, 0x00, 0xff}))
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("AaBbCC")
	require.NoError(t, err)
	assert.Equal(t, "aabbcc", got)

	_, err = Normalize("xyz")
	assert.ErrorIs(t, err, common.ErrInvalidChecksumFormat)
}

func TestPostgresLiteral(t *testing.T) {
	assert.Equal(t, `\xaabb`, PostgresLiteral([]byte{0xaa, 0xbb}))
}
