// Package migrations carries the schema files for the document store,
// applied in lexical order on open.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
