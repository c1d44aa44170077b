package cmd

import (
	"context"
	"log"
	"log/slog"
	"vending-machine/db"
	"vending-machine/outbound/postgres"
)

func runMigrateCmd(ctx context.Context) {
	cfg := newCfg("env")

	pool := newDb(cfg)
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, db.Migrations, "migration")
	if err != nil {
		log.Fatalln("failed to migrate", err)
	}

	slog.InfoContext(ctx, "migration finished", slog.Int("applied", applied))
}
