// Package migrations embeds the SQL migrations so the binary can migrate without a checkout.
package migrations

import "embed"

const PostgresDir = "postgres"

//go:embed postgres/*.sql
var Postgres embed.FS
