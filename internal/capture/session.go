// Package capture manages capture sessions: the finite-state objects that
// track one in-progress recording or staged input from creation to final
// disposition. A session owns its payload until it is submitted for
// ingestion, at which point ownership transfers to the coordinator and the
// session retains only a reference for retry.
package capture

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind identifies how a capture originated.
type Kind string

// Capture kinds.
const (
	KindLiveAudio  Kind = "live_audio"
	KindFileUpload Kind = "file_upload"
	KindPastedText Kind = "pasted_text"
)

// Validate checks that the kind is a known capture kind.
func (k Kind) Validate() error {
	switch k {
	case KindLiveAudio, KindFileUpload, KindPastedText:
		return nil
	default:
		return fmt.Errorf("invalid capture kind: %s", k)
	}
}

// State identifies a session's position in its lifecycle.
type State string

// Session states. Live recordings move Idle → Recording → Stopped →
// Ingesting → Finalized; file uploads and pasted text move Idle → Staged →
// Ingesting → Finalized. Cancelled is reachable from any non-terminal state.
const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StateStaged    State = "staged"
	StateStopped   State = "stopped"
	StateIngesting State = "ingesting"
	StateFinalized State = "finalized"
	StateCancelled State = "cancelled"
)

// Terminal reports whether the state admits no further transitions.
func (s State) Terminal() bool {
	return s == StateFinalized || s == StateCancelled
}

// Session is one capture from a single actor. All transitions are
// serialized by an internal mutex; the payload is mutable only while the
// session is Recording or Staged.
type Session struct {
	mu sync.Mutex

	id      uuid.UUID
	actorID string
	kind    Kind
	state   State

	payload     []byte
	contentType string

	startedAt time.Time
	endedAt   time.Time

	// preSubmit remembers the state to restore when ingestion fails,
	// so the caller can retry without re-recording.
	preSubmit State

	manager *Manager
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// ActorID returns the owning actor.
func (s *Session) ActorID() string { return s.actorID }

// Kind returns how the capture originated.
func (s *Session) Kind() Kind { return s.kind }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ContentType returns the payload's declared content type.
func (s *Session) ContentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentType
}

// StartedAt returns when recording began. Zero for staged inputs.
func (s *Session) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// EndedAt returns when recording stopped. Zero for staged inputs.
func (s *Session) EndedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt
}

// Start begins a live recording. It fails with ErrPermissionDenied when the
// capture device permission is not granted and ErrDeviceBusy when another
// session is already recording for the same actor.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kind != KindLiveAudio {
		return fmt.Errorf("%w: %s session cannot start recording", ErrInvalidTransition, s.kind)
	}
	if s.state != StateIdle {
		return transitionError(s.state, StateRecording)
	}

	granted, err := s.manager.device.PermissionGranted(ctx, s.actorID)
	if err != nil {
		return fmt.Errorf("check capture permission: %w", err)
	}
	if !granted {
		return ErrPermissionDenied
	}

	if err := s.manager.claim(s.actorID, s.id); err != nil {
		return err
	}

	if err := s.manager.device.BeginCapture(ctx, s.id); err != nil {
		s.manager.release(s.actorID, s.id)
		return fmt.Errorf("begin capture: %w", err)
	}

	s.state = StateRecording
	s.startedAt = s.manager.clock()
	return nil
}

// Stop ends a live recording, pulling the captured bytes from the device.
// A recording with zero duration or no bytes fails with ErrNothingRecorded
// and rolls the session back to Idle.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return transitionError(s.state, StateStopped)
	}

	data, contentType, err := s.manager.device.EndCapture(ctx, s.id)
	if err != nil {
		return fmt.Errorf("end capture: %w", err)
	}

	ended := s.manager.clock()
	s.manager.release(s.actorID, s.id)

	if len(data) == 0 || ended.Sub(s.startedAt) < time.Second {
		s.state = StateIdle
		s.startedAt = time.Time{}
		return ErrNothingRecorded
	}

	if contentType == "" {
		contentType = "audio/x-m4a"
	}

	s.payload = data
	s.contentType = contentType
	s.endedAt = ended
	s.state = StateStopped
	return nil
}

// Stage attaches an uploaded file or pasted transcript to the session.
// Presence of content is checked synchronously; size and type checks run
// later during ingestion.
func (s *Session) Stage(data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kind == KindLiveAudio {
		return fmt.Errorf("%w: live audio sessions cannot stage content", ErrInvalidTransition)
	}
	if s.state != StateIdle && s.state != StateStaged {
		return transitionError(s.state, StateStaged)
	}

	if s.kind == KindPastedText {
		if strings.TrimSpace(string(data)) == "" {
			return ErrNothingStaged
		}
		if contentType == "" {
			contentType = "text/plain"
		}
	} else if len(data) == 0 {
		return ErrNothingStaged
	}

	s.payload = data
	s.contentType = contentType
	s.state = StateStaged
	return nil
}

// Submit transitions the session to Ingesting and hands its payload to the
// caller. The session becomes read-only; ownership of the payload transfers
// and the session retains only a reference for rollback.
func (s *Session) Submit() ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStopped && s.state != StateStaged {
		return nil, "", transitionError(s.state, StateIngesting)
	}

	s.preSubmit = s.state
	s.state = StateIngesting
	return s.payload, s.contentType, nil
}

// Succeed finalizes the session after a successful ingestion. The payload
// reference is dropped; the durable copy lives in the blob store.
func (s *Session) Succeed() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIngesting {
		return transitionError(s.state, StateFinalized)
	}

	s.state = StateFinalized
	s.payload = nil
	return nil
}

// Fail rolls the session back to its pre-submit state after an ingestion
// failure, preserving the payload so the caller may retry.
func (s *Session) Fail() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIngesting {
		return transitionError(s.state, s.preSubmit)
	}

	s.state = s.preSubmit
	return nil
}

// Cancel releases the payload and moves the session to its terminal
// Cancelled state. Valid from any non-terminal state.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return transitionError(s.state, StateCancelled)
	}

	if s.state == StateRecording {
		// Drain bytes the device may already hold for this session.
		s.manager.device.EndCapture(context.Background(), s.id)
		s.manager.release(s.actorID, s.id)
	}

	s.state = StateCancelled
	s.payload = nil
	return nil
}

func transitionError(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
