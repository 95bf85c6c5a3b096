// Package migrations holds the schema for the SQLite draft store.
package migrations

import "embed"

// FS holds the numbered NNN_name.up.sql and NNN_name.down.sql files.
//
//go:embed *.sql
var FS embed.FS
