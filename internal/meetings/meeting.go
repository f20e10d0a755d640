// Package meetings persists the durable record of every successful capture:
// one meeting row per ingested recording, upload, or pasted transcript.
// Records are insert-only from the ingestion path; there is no update or
// delete surface.
package meetings

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Meeting is one captured meeting as stored in the registry.
type Meeting struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Kind        string    `json:"kind"`
	Locator     string    `json:"locator,omitempty"`
	Transcript  string    `json:"transcript,omitempty"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCommand carries the fields for registering a new meeting. Exactly
// one of Locator and Transcript must be set: blob-backed content carries a
// storage locator, short pasted text is stored inline as a transcript.
type CreateCommand struct {
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Kind        string `json:"kind"`
	Locator     string `json:"locator"`
	Transcript  string `json:"transcript"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
}

// Validate checks structural requirements before insert.
func (c CreateCommand) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidCommand)
	}
	if c.ContentType == "" {
		return fmt.Errorf("%w: content type is required", ErrInvalidCommand)
	}
	if c.SizeBytes <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidCommand)
	}
	if (c.Locator == "") == (c.Transcript == "") {
		return fmt.Errorf("%w: exactly one of locator and transcript must be set", ErrInvalidCommand)
	}
	return nil
}
