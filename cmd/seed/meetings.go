package main

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type meetingSeeder struct{}

func (meetingSeeder) Name() string { return "meetings" }

type meetingFixture struct {
	title       string
	summary     string
	kind        string
	locator     string
	transcript  string
	contentType string
	sizeBytes   int64
	completed   bool
}

var meetingFixtures = []meetingFixture{
	{
		title:       "Weekly product sync",
		summary:     "Roadmap review and sprint planning.",
		kind:        "live_audio",
		locator:     "uploads/01JD2S9AC9V9XK3W5T8Q4RNFME.m4a",
		contentType: "audio/x-m4a",
		sizeBytes:   2_485_760,
		completed:   true,
	},
	{
		title:       "Vendor negotiation call",
		kind:        "file_upload",
		locator:     "uploads/01JD2SB1QH8Z4M6Y7N2P5KXWEV.mp3",
		contentType: "audio/mpeg",
		sizeBytes:   5_242_880,
	},
	{
		title:       "Standup notes",
		kind:        "pasted_text",
		transcript:  "Discussed release blockers. API review moved to Thursday.",
		contentType: "text/plain",
		sizeBytes:   58,
		completed:   true,
	},
}

// Seed inserts fixture meetings, skipping the run entirely when any
// meetings already exist.
func (meetingSeeder) Seed(ctx context.Context, tx *sql.Tx) error {
	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM public.meetings").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	stmt := `
		INSERT INTO public.meetings (id, title, summary, kind, locator, transcript, content_type, size_bytes, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, f := range meetingFixtures {
		_, err := tx.ExecContext(ctx, stmt,
			uuid.New(),
			f.title,
			nullable(f.summary),
			f.kind,
			nullable(f.locator),
			nullable(f.transcript),
			f.contentType,
			f.sizeBytes,
			f.completed,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
