package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Seeder populates one table with development fixtures. Seeders run inside
// a shared transaction and must be idempotent: seeding an already-seeded
// database is a no-op.
type Seeder interface {
	Name() string
	Seed(ctx context.Context, tx *sql.Tx) error
}

func runSeeders(ctx context.Context, db *sql.DB, logger *slog.Logger, seeders []Seeder) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, seeder := range seeders {
		logger.Info("seeding", "seeder", seeder.Name())
		if err := seeder.Seed(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("seed %s: %w", seeder.Name(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
