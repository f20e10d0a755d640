package meetings

import (
	"database/sql"

	"github.com/echomindhq/echomind/pkg/query"
	"github.com/echomindhq/echomind/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "meetings", "m").
		Project("id", "Id").
		Project("title", "Title").
		Project("summary", "Summary").
		Project("kind", "Kind").
		Project("locator", "Locator").
		Project("transcript", "Transcript").
		Project("content_type", "ContentType").
		Project("size_bytes", "SizeBytes").
		Project("is_completed", "IsCompleted").
		Project("created_at", "CreatedAt")
}

// scanMeeting maps a row in projection column order onto a Meeting.
func scanMeeting(s repository.Scanner) (Meeting, error) {
	var m Meeting
	var summary, locator, transcript sql.NullString

	err := s.Scan(
		&m.ID,
		&m.Title,
		&summary,
		&m.Kind,
		&locator,
		&transcript,
		&m.ContentType,
		&m.SizeBytes,
		&m.IsCompleted,
		&m.CreatedAt,
	)
	if err != nil {
		return Meeting{}, err
	}

	m.Summary = summary.String
	m.Locator = locator.String
	m.Transcript = transcript.String
	return m, nil
}

// Filters narrows list queries. All fields are optional.
type Filters struct {
	Kind        *string
	IsCompleted *bool
}

func (f *Filters) apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Kind", stringArg(f.Kind))
	if f.IsCompleted != nil {
		b.WhereEquals("IsCompleted", *f.IsCompleted)
	}
	return b
}

func stringArg(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
