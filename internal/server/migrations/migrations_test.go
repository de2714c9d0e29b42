package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		b, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		body := string(b)
		assert.Contains(t, body, "-- +goose Up", name)
		assert.Contains(t, body, "-- +goose Down", name)
	}
}

func TestMigrations_AuditTableIsIdempotent(t *testing.T) {
	b, err := fs.ReadFile(Migrations, "00001_create_assets_delete_audits.sql")
	require.NoError(t, err)

	up := strings.SplitN(string(b), "-- +goose Down", 2)[0]
	assert.Contains(t, up, "CREATE TABLE IF NOT EXISTS assets_delete_audits")
	assert.Contains(t, up, "GENERATED ALWAYS AS IDENTITY")
	assert.Contains(t, up, "asset_id UUID NOT NULL")
	assert.Contains(t, up, "changed_on TIMESTAMP(6) NOT NULL")
	assert.Contains(t, up, "CREATE INDEX IF NOT EXISTS")
}
