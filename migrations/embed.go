// Package migrations holds the Postgres schema, applied in file name order.
package migrations

import "embed"

// FS contains the NNN_name.up.sql files.
//
//go:embed *.up.sql
var FS embed.FS
