package postgres

import "embed"

// MigrationsFS embeds the goose SQL migrations so the server binary can
// bring a fresh database up to the current schema without external files.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migrations inside MigrationsFS.
const MigrationsDir = "migrations"
