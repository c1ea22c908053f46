// Package migrations holds the goose SQL migrations, embedded so the
// binary can migrate the database on startup without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
