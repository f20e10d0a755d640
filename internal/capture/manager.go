package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager is the capture session factory. It owns the one-active-session
// guard: at most one session per actor may be recording at a time,
// enforced here rather than by caller lifecycle.
type Manager struct {
	mu        sync.Mutex
	device    Device
	logger    *slog.Logger
	clock     func() time.Time
	sessions  map[uuid.UUID]*Session
	recording map[string]uuid.UUID
}

// NewManager creates a session manager over the given capture device.
func NewManager(device Device, logger *slog.Logger) *Manager {
	return &Manager{
		device:    device,
		logger:    logger.With("system", "capture"),
		clock:     time.Now,
		sessions:  make(map[uuid.UUID]*Session),
		recording: make(map[string]uuid.UUID),
	}
}

// Create registers a new Idle session for the actor.
func (m *Manager) Create(actorID string, kind Kind) (*Session, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	session := &Session{
		id:      uuid.New(),
		actorID: actorID,
		kind:    kind,
		state:   StateIdle,
		manager: m,
	}

	m.mu.Lock()
	m.sessions[session.id] = session
	m.mu.Unlock()

	m.logger.Info("session created", "id", session.id, "actor", actorID, "kind", kind)
	return session, nil
}

// Get returns the session with the given id.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Remove drops a terminal session from the registry. The session state is
// read before the registry lock is taken; terminal states never regress,
// so the check cannot go stale.
func (m *Manager) Remove(id uuid.UUID) error {
	session, err := m.Get(id)
	if err != nil {
		return err
	}
	if state := session.State(); !state.Terminal() {
		return fmt.Errorf("%w: session %s is still %s", ErrInvalidTransition, id, state)
	}

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

// claim reserves the actor's capture device for one session.
func (m *Manager) claim(actorID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if active, ok := m.recording[actorID]; ok && active != id {
		return ErrDeviceBusy
	}
	m.recording[actorID] = id
	return nil
}

// release frees the actor's capture device if held by this session.
func (m *Manager) release(actorID string, id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if active, ok := m.recording[actorID]; ok && active == id {
		delete(m.recording, actorID)
	}
}
