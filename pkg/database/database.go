// Package database provides PostgreSQL connection management built on
// database/sql with the pgx stdlib driver. Connections are configured from
// Config and verified during lifecycle startup.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/echomindhq/echomind/pkg/lifecycle"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// System provides access to the shared database connection pool.
type System interface {
	// DB returns the underlying connection pool.
	DB() *sql.DB

	// Start registers lifecycle hooks: a startup ping to verify
	// connectivity and a shutdown hook that closes the pool.
	Start(lc *lifecycle.Coordinator) error
}

type system struct {
	db     *sql.DB
	cfg    *Config
	logger *slog.Logger
}

// New opens a connection pool for the given configuration.
// Connectivity is not verified until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	db, err := sql.Open("pgx", cfg.Dsn())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &system{
		db:     db,
		cfg:    cfg,
		logger: logger.With("system", "database"),
	}, nil
}

func (s *system) DB() *sql.DB {
	return s.db
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting database system", "host", s.cfg.Host, "name", s.cfg.Name)

	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ConnTimeoutDuration())
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			s.logger.Error("database ping failed", "error", err)
			return
		}
		s.logger.Info("database connection verified")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		if err := s.db.Close(); err != nil {
			s.logger.Warn("database close failed", "error", err)
		}
	})

	return nil
}
