// Package migrations embeds the goose migrations of the gate device database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
