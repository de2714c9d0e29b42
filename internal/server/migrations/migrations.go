// Package migrations embeds the goose migrations for the tables this module
// owns. The assets table itself belongs to the primary system and is never
// migrated here.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
