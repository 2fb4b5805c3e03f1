// Package migrations embeds the sqlite token-store schema so it compiles
// into the consuming binary.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
