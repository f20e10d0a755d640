package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/echomindhq/echomind/internal/config"
	"github.com/echomindhq/echomind/pkg/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.Finalize(); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.New(&cfg.Logging)

	db, err := sql.Open("pgx", cfg.Database.Dsn())
	if err != nil {
		logger.Error("open database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	seeders := []Seeder{
		meetingSeeder{},
	}

	if err := runSeeders(ctx, db, logger, seeders); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("seeding complete")
}
