package meetings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/echomindhq/echomind/pkg/pagination"
	"github.com/echomindhq/echomind/pkg/query"
	"github.com/echomindhq/echomind/pkg/repository"
	"github.com/google/uuid"
)

// Repository provides data access for the meeting registry.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a meeting repository.
func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger.With("repository", "meetings"),
	}
}

// Register inserts a new meeting record. The registry is insert-only: a
// record is never mutated after this call. The returned meeting reflects
// the row as stored, including the generated id and timestamp.
func (r *Repository) Register(ctx context.Context, cmd CreateCommand) (Meeting, error) {
	if err := cmd.Validate(); err != nil {
		return Meeting{}, err
	}

	meeting, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Meeting, error) {
		stmt := fmt.Sprintf(`
			INSERT INTO public.meetings AS m (id, title, summary, kind, locator, transcript, content_type, size_bytes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING %s`,
			projection().Columns(),
		)

		args := []any{
			uuid.New(),
			cmd.Title,
			nullable(cmd.Summary),
			cmd.Kind,
			nullable(cmd.Locator),
			nullable(cmd.Transcript),
			cmd.ContentType,
			cmd.SizeBytes,
		}

		return repository.QueryOne(ctx, tx, stmt, args, scanMeeting)
	})
	if err != nil {
		return Meeting{}, r.mapError(err)
	}

	r.logger.Info("meeting registered", "id", meeting.ID, "kind", meeting.Kind, "size", meeting.SizeBytes)
	return meeting, nil
}

// List returns a page of meetings, newest first by default.
func (r *Repository) List(ctx context.Context, page pagination.PageRequest, filters Filters) (pagination.PageResult[Meeting], error) {
	builder := filters.apply(r.builder()).
		WhereSearch(page.Search, "Title", "Summary").
		OrderByFields(page.Sort)

	countStmt, countArgs := builder.BuildCount()
	total, err := repository.QueryOne(ctx, r.db, countStmt, countArgs, scanCount)
	if err != nil {
		return pagination.PageResult[Meeting]{}, r.mapError(err)
	}

	pageStmt, pageArgs := builder.BuildPage(page.Page, page.PageSize)
	data, err := repository.QueryMany(ctx, r.db, pageStmt, pageArgs, scanMeeting)
	if err != nil {
		return pagination.PageResult[Meeting]{}, r.mapError(err)
	}

	return pagination.NewPageResult(data, total, page.Page, page.PageSize), nil
}

// Count returns the total number of registered meetings.
func (r *Repository) Count(ctx context.Context) (int, error) {
	stmt, args := r.builder().BuildCount()
	total, err := repository.QueryOne(ctx, r.db, stmt, args, scanCount)
	if err != nil {
		return 0, r.mapError(err)
	}
	return total, nil
}

// Find returns a single meeting by id.
func (r *Repository) Find(ctx context.Context, id uuid.UUID) (Meeting, error) {
	stmt, args := r.builder().BuildSingle("Id", id)
	meeting, err := repository.QueryOne(ctx, r.db, stmt, args, scanMeeting)
	if err != nil {
		return Meeting{}, r.mapError(err)
	}
	return meeting, nil
}

// All returns every registered meeting, newest first. Used by the dashboard
// refresher to build a consistent snapshot in a single query.
func (r *Repository) All(ctx context.Context) ([]Meeting, error) {
	stmt, args := r.builder().BuildPage(1, allPageSize)
	data, err := repository.QueryMany(ctx, r.db, stmt, args, scanMeeting)
	if err != nil {
		return nil, r.mapError(err)
	}
	return data, nil
}

// allPageSize bounds the dashboard snapshot query.
const allPageSize = 10000

func (r *Repository) builder() *query.Builder {
	return query.NewBuilder(projection(), query.SortField{Field: "CreatedAt", Descending: true})
}

// mapError translates driver errors to domain sentinels. Connection-level
// failures surface as ErrUnavailable so callers can distinguish a missing
// row from an unreachable store.
func (r *Repository) mapError(err error) error {
	err = repository.MapError(err, ErrNotFound, ErrDuplicate)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrInvalidCommand) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func scanCount(s repository.Scanner) (int, error) {
	var count int
	err := s.Scan(&count)
	return count, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
