package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/internal/config"
	"github.com/echomindhq/echomind/internal/dashboard"
	"github.com/echomindhq/echomind/internal/ingest"
	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/internal/validation"
	"github.com/echomindhq/echomind/pkg/database"
	"github.com/echomindhq/echomind/pkg/lifecycle"
	"github.com/echomindhq/echomind/pkg/logging"
	"github.com/echomindhq/echomind/pkg/middleware"
	"github.com/echomindhq/echomind/pkg/storage"
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

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return err
	}
	if err := db.Start(lc); err != nil {
		return err
	}

	if err := runMigrations(cfg, logger); err != nil {
		return err
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return err
	}
	if err := store.Start(lc); err != nil {
		return err
	}

	relay := capture.NewRelayDevice(true)
	manager := capture.NewManager(relay, logger)

	registry := meetings.NewSystem(db.DB(), logger)
	registry.Start(lc)

	validator := validation.New(cfg.Ingest.MaxUploadSizeBytes())
	coordinator := ingest.NewCoordinator(
		manager,
		store,
		registry,
		validator,
		logger,
		cfg.Ingest.OpTimeoutDuration(),
		cfg.Ingest.InlineTextLimitBytes(),
	)

	view := dashboard.NewView(registry, logger)
	view.Start(lc)

	mux := http.NewServeMux()
	err = registerRoutes(mux, cfg, logger, handlerSet{
		captures:  capture.NewHandler(manager, relay, logger, cfg.Ingest.MaxUploadSizeBytes()),
		ingest:    ingest.NewHandler(coordinator, manager, logger),
		meetings:  meetings.NewHandler(registry, cfg.API.Pagination, logger),
		dashboard: dashboard.NewHandler(view, logger),
		store:     store,
		lc:        lc,
	})
	if err != nil {
		return err
	}

	stack := middleware.New()
	stack.Use(middleware.Logger(logger))
	stack.Use(middleware.TrimSlash())
	if cfg.API.CORS.Enabled {
		stack.Use(middleware.CORS(&cfg.API.CORS))
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      stack.Apply(mux),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	lc.WaitForStartup()
	logger.Info("server listening", "addr", server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown incomplete", "error", err)
	}

	if err := lc.Shutdown(cfg.ShutdownTimeoutDuration()); err != nil {
		logger.Warn("lifecycle shutdown incomplete", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
