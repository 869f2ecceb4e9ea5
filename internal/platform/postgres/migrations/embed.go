// Package migrations embeds the goose SQL migrations for the flashdeck schema.
package migrations

import "embed"

// FS holds every *.sql migration, ordered by goose's version prefix.
//
//go:embed *.sql
var FS embed.FS
