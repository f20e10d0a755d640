// Package ingest drives the capture-to-meeting pipeline: validate the
// submitted payload, durably store it, then register the meeting record.
// The pipeline never leaves a registered meeting without its bytes; when
// registration fails after a successful upload, the coordinator issues a
// compensating delete and reports an orphaned blob only if that delete
// also fails.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/internal/validation"
	"github.com/echomindhq/echomind/pkg/storage"
	"github.com/google/uuid"
)

// Coordinator executes ingestion for submitted capture sessions.
type Coordinator struct {
	manager     *capture.Manager
	storage     storage.System
	meetings    meetings.System
	validator   validation.Validator
	logger      *slog.Logger
	opTimeout   time.Duration
	inlineLimit int64
}

// NewCoordinator creates an ingestion coordinator. opTimeout bounds each
// individual storage and registry call; inlineLimit is the largest pasted
// transcript stored inline in the meeting record rather than as a blob.
func NewCoordinator(
	manager *capture.Manager,
	store storage.System,
	registry meetings.System,
	validator validation.Validator,
	logger *slog.Logger,
	opTimeout time.Duration,
	inlineLimit int64,
) *Coordinator {
	return &Coordinator{
		manager:     manager,
		storage:     store,
		meetings:    registry,
		validator:   validator,
		logger:      logger.With("system", "ingest"),
		opTimeout:   opTimeout,
		inlineLimit: inlineLimit,
	}
}

// Ingest submits the session's payload through the pipeline. On success the
// session is finalized and the registered meeting returned. On failure the
// session rolls back to its pre-submit state so the caller may retry, and
// the returned *Error names the phase that failed.
func (c *Coordinator) Ingest(ctx context.Context, sessionID uuid.UUID, req Request) (meetings.Meeting, error) {
	session, err := c.manager.Get(sessionID)
	if err != nil {
		return meetings.Meeting{}, err
	}

	payload, contentType, err := session.Submit()
	if err != nil {
		return meetings.Meeting{}, err
	}

	meeting, err := c.run(ctx, session, payload, contentType, req)
	if err != nil {
		if rollbackErr := session.Fail(); rollbackErr != nil {
			c.logger.Error("session rollback failed", "session", sessionID, "error", rollbackErr)
		}
		return meetings.Meeting{}, err
	}

	if err := session.Succeed(); err != nil {
		c.logger.Error("session finalize failed", "session", sessionID, "error", err)
	}

	c.logger.Info("capture ingested",
		"session", sessionID,
		"meeting", meeting.ID,
		"kind", meeting.Kind,
		"size", meeting.SizeBytes,
	)
	return meeting, nil
}

// run executes the three pipeline phases. The payload is not touched until
// validation passes; no side effect precedes a validation failure.
func (c *Coordinator) run(ctx context.Context, session *capture.Session, payload []byte, contentType string, req Request) (meetings.Meeting, error) {
	isText := session.Kind() == capture.KindPastedText

	if err := c.validate(payload, contentType, isText); err != nil {
		return meetings.Meeting{}, &Error{Phase: PhaseValidate, Err: err}
	}

	cmd := meetings.CreateCommand{
		Title:       c.title(req, session),
		Summary:     req.Summary,
		Kind:        string(session.Kind()),
		ContentType: contentType,
		SizeBytes:   int64(len(payload)),
	}

	uploaded := false
	var locator storage.Locator

	if isText && int64(len(payload)) <= c.inlineLimit {
		cmd.Transcript = string(payload)
	} else {
		var err error
		locator, err = c.upload(ctx, payload, contentType)
		if err != nil {
			return meetings.Meeting{}, &Error{Phase: PhaseUpload, Err: err}
		}
		uploaded = true
		cmd.Locator = locator.Key
	}

	meeting, err := c.register(ctx, cmd)
	if err != nil {
		pipelineErr := &Error{Phase: PhaseRegister, Err: err}
		if uploaded {
			c.compensate(ctx, locator.Key, pipelineErr)
		}
		return meetings.Meeting{}, pipelineErr
	}

	return meeting, nil
}

func (c *Coordinator) validate(payload []byte, contentType string, isText bool) error {
	if isText {
		return c.validator.ValidateText(string(payload))
	}
	return c.validator.ValidatePayload(int64(len(payload)), contentType)
}

func (c *Coordinator) upload(ctx context.Context, payload []byte, contentType string) (storage.Locator, error) {
	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	locator, err := c.storage.Upload(opCtx, payload, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrQuotaExceeded) {
			return storage.Locator{}, fmt.Errorf("%w: %v", ErrStorageQuotaExceeded, err)
		}
		return storage.Locator{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return locator, nil
}

func (c *Coordinator) register(ctx context.Context, cmd meetings.CreateCommand) (meetings.Meeting, error) {
	opCtx, cancel := context.WithTimeout(ctx, c.opTimeout)
	defer cancel()

	meeting, err := c.meetings.Register(opCtx, cmd)
	if err != nil {
		if errors.Is(err, meetings.ErrUnavailable) {
			return meetings.Meeting{}, fmt.Errorf("%w: %v", ErrMetadataUnavailable, err)
		}
		return meetings.Meeting{}, err
	}
	return meeting, nil
}

// compensate deletes the uploaded blob after a failed registration. The
// delete runs even when the caller's context is already cancelled; a blob
// with no registered meeting is unreachable and must not linger. If the
// delete itself fails, the error is marked as carrying an orphaned blob.
func (c *Coordinator) compensate(ctx context.Context, key string, pipelineErr *Error) {
	opCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opTimeout)
	defer cancel()

	if err := c.storage.Delete(opCtx, key); err != nil {
		pipelineErr.OrphanBlob = true
		pipelineErr.OrphanKey = key
		c.logger.Error("compensating delete failed, blob orphaned", "key", key, "error", err)
		return
	}

	c.logger.Info("compensating delete completed", "key", key)
}

// title falls back to a timestamped default when the caller omits one.
func (c *Coordinator) title(req Request, session *capture.Session) string {
	if req.Title != "" {
		return req.Title
	}
	at := session.EndedAt()
	if at.IsZero() {
		at = time.Now()
	}
	return "Meeting " + at.Format("2006-01-02 15:04")
}
