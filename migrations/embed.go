package migrations

import "embed"

// Files holds the sqlite schema migrations applied by db.OpenSQLite, named
// <version>_<name>.sql.
//
//go:embed *.sql
var Files embed.FS
