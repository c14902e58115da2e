// Package migrations embeds the session schema applied by the SQLite
// store when it first opens a database.
package migrations

import "embed"

// FS holds the numbered up and down scripts.
//
//go:embed *.sql
var FS embed.FS
