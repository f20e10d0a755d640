package meetings

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/echomindhq/echomind/pkg/lifecycle"
	"github.com/echomindhq/echomind/pkg/pagination"
	"github.com/google/uuid"
)

// System is the meeting registry subsystem.
type System interface {
	// Register inserts a new meeting record.
	Register(ctx context.Context, cmd CreateCommand) (Meeting, error)

	// List returns a page of meetings.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (pagination.PageResult[Meeting], error)

	// Count returns the total number of registered meetings.
	Count(ctx context.Context) (int, error)

	// Find returns a single meeting by id.
	Find(ctx context.Context, id uuid.UUID) (Meeting, error)

	// All returns every registered meeting, newest first.
	All(ctx context.Context) ([]Meeting, error)

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator)
}

type system struct {
	repo   *Repository
	logger *slog.Logger
}

// NewSystem creates the meeting registry subsystem.
func NewSystem(db *sql.DB, logger *slog.Logger) System {
	return &system{
		repo:   NewRepository(db, logger),
		logger: logger.With("system", "meetings"),
	}
}

func (s *system) Register(ctx context.Context, cmd CreateCommand) (Meeting, error) {
	return s.repo.Register(ctx, cmd)
}

func (s *system) List(ctx context.Context, page pagination.PageRequest, filters Filters) (pagination.PageResult[Meeting], error) {
	return s.repo.List(ctx, page, filters)
}

func (s *system) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *system) Find(ctx context.Context, id uuid.UUID) (Meeting, error) {
	return s.repo.Find(ctx, id)
}

func (s *system) All(ctx context.Context) ([]Meeting, error) {
	return s.repo.All(ctx)
}

func (s *system) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		count, err := s.repo.Count(lc.Context())
		if err != nil {
			s.logger.Error("meeting registry startup check failed", "error", err)
			return
		}
		s.logger.Info("meeting registry ready", "meetings", count)
	})
}
