package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"vending-machine/common/constant"
	"vending-machine/common/contract"
)

const createSchemaMigrations = `CREATE TABLE IF NOT EXISTS schema_migrations (
    version    VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT NOW()
)`

// Migrate applies every *.up.sql file under dir in lexical order, each in its
// own transaction, skipping versions already recorded in schema_migrations.
func Migrate(ctx context.Context, db contract.DbConn, fsys fs.FS, dir string) (int, error) {
	if _, err := db.Exec(ctx, createSchemaMigrations); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	names, err := fs.Glob(fsys, dir+"/*.up.sql")
	if err != nil {
		return 0, err
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		version := strings.TrimSuffix(name[strings.LastIndex(name, "/")+1:], ".up.sql")

		var exists bool
		err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}

		if exists {
			continue
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, err
		}

		if err := applyMigration(ctx, db, version, string(body)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", version, err)
		}

		slog.InfoContext(ctx, "migration applied", slog.String("version", version))
		applied++
	}

	return applied, nil
}

func applyMigration(ctx context.Context, db contract.DbConn, version, body string) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, body); err == nil {
		_, err = tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version)
	}

	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "failed to rollback migration", slog.String("version", version), slog.Any(constant.LogFieldErr, rbErr))
		}
		return err
	}

	return tx.Commit(ctx)
}
