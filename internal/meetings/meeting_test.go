package meetings

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func validCommand() CreateCommand {
	return CreateCommand{
		Title:       "Weekly sync",
		Kind:        "live_audio",
		Locator:     "uploads/01JD2S9AC9V9XK3W5T8Q4RNFME.m4a",
		ContentType: "audio/x-m4a",
		SizeBytes:   2048,
	}
}

func TestCreateCommand_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateCommand)
		valid  bool
	}{
		{"valid blob-backed", func(c *CreateCommand) {}, true},
		{"valid inline transcript", func(c *CreateCommand) {
			c.Locator = ""
			c.Transcript = "notes"
			c.ContentType = "text/plain"
		}, true},
		{"missing title", func(c *CreateCommand) { c.Title = "" }, false},
		{"missing content type", func(c *CreateCommand) { c.ContentType = "" }, false},
		{"zero size", func(c *CreateCommand) { c.SizeBytes = 0 }, false},
		{"negative size", func(c *CreateCommand) { c.SizeBytes = -1 }, false},
		{"neither locator nor transcript", func(c *CreateCommand) { c.Locator = "" }, false},
		{"both locator and transcript", func(c *CreateCommand) { c.Transcript = "notes" }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := validCommand()
			tc.mutate(&cmd)

			err := cmd.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidCommand) {
				t.Errorf("Validate() error = %v, want %v", err, ErrInvalidCommand)
			}
		})
	}
}

func TestProjection_Columns(t *testing.T) {
	p := projection()

	if p.Table() != "public.meetings m" {
		t.Errorf("Table() = %q, want %q", p.Table(), "public.meetings m")
	}

	columns := p.Columns()
	for _, col := range []string{"m.id", "m.title", "m.locator", "m.transcript", "m.size_bytes", "m.is_completed", "m.created_at"} {
		if !strings.Contains(columns, col) {
			t.Errorf("Columns() missing %q: %s", col, columns)
		}
	}

	if got := p.Column("CreatedAt"); got != "m.created_at" {
		t.Errorf("Column(CreatedAt) = %q, want m.created_at", got)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrDuplicate, http.StatusConflict},
		{ErrInvalidCommand, http.StatusBadRequest},
		{ErrUnavailable, http.StatusServiceUnavailable},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := MapHTTPStatus(tc.err); got != tc.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
