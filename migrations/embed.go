// Package migrations embeds the versioned SQL schema migrations applied in
// order at startup and by cmd/migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
