// Package migrations embeds the goose migrations for each supported
// key-value storage driver, one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS
