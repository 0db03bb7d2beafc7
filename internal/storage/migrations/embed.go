package migrations

import "embed"

// FS holds the schema for the SQLite slot backend, applied in filename order.
//
//go:embed *.sql
var FS embed.FS
