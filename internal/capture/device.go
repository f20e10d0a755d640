package capture

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Device is the capture device collaborator. It reports permission-grant
// status when a recording starts and supplies the raw recorded bytes when
// it stops. Implementations must be safe for concurrent use.
type Device interface {
	// PermissionGranted reports whether the actor has granted capture permission.
	PermissionGranted(ctx context.Context, actorID string) (bool, error)

	// BeginCapture signals the device to start recording for the session.
	BeginCapture(ctx context.Context, sessionID uuid.UUID) error

	// EndCapture stops recording and returns the captured bytes and their
	// content type. Empty bytes indicate nothing was recorded.
	EndCapture(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error)
}

type delivery struct {
	data        []byte
	contentType string
}

// RelayDevice bridges remote capture clients to the Device interface.
// Clients record on their own hardware and push the result over the API;
// the relay holds delivered bytes until the owning session stops and
// collects them. Permission state is tracked per actor.
type RelayDevice struct {
	mu           sync.Mutex
	defaultGrant bool
	permissions  map[string]bool
	pending      map[uuid.UUID]delivery
}

// NewRelayDevice creates a relay. When defaultGrant is true, actors are
// treated as having granted capture permission unless explicitly revoked.
func NewRelayDevice(defaultGrant bool) *RelayDevice {
	return &RelayDevice{
		defaultGrant: defaultGrant,
		permissions:  make(map[string]bool),
		pending:      make(map[uuid.UUID]delivery),
	}
}

// Grant records that the actor granted capture permission.
func (d *RelayDevice) Grant(actorID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permissions[actorID] = true
}

// Revoke records that the actor revoked capture permission.
func (d *RelayDevice) Revoke(actorID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.permissions[actorID] = false
}

// Deliver stores recorded bytes for a session until EndCapture collects them.
func (d *RelayDevice) Deliver(sessionID uuid.UUID, data []byte, contentType string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending[sessionID] = delivery{data: data, contentType: contentType}
}

func (d *RelayDevice) PermissionGranted(ctx context.Context, actorID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if granted, ok := d.permissions[actorID]; ok {
		return granted, nil
	}
	return d.defaultGrant, nil
}

func (d *RelayDevice) BeginCapture(ctx context.Context, sessionID uuid.UUID) error {
	return nil
}

func (d *RelayDevice) EndCapture(ctx context.Context, sessionID uuid.UUID) ([]byte, string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	del, ok := d.pending[sessionID]
	if !ok {
		return nil, "", nil
	}
	delete(d.pending, sessionID)
	return del.data, del.contentType, nil
}
