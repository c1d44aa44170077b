package db

import "embed"

// Migrations holds the up migrations applied by the migrate command.
//
//go:embed migration/*.up.sql
var Migrations embed.FS
