package migrations

import "embed"

// Embedded schema files bundled at compile time
// Single binary deployment without external file dependencies
//
//go:embed sqlite/*.sql
var SqliteSchema embed.FS

//go:embed postgres/*.sql
var PostgresSchema embed.FS
