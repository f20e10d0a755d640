package storage

import (
	"context"

	"github.com/echomindhq/echomind/pkg/lifecycle"
)

// Locator is an opaque, resolvable reference to stored bytes. A locator is
// created exactly once per successful upload and is never reused: every
// upload generates a fresh key, even when retrying the same logical content.
type Locator struct {
	// Key is the stable storage path under which the bytes were written.
	Key string `json:"key"`

	// PublicRef is the resolvable URL for the stored bytes.
	PublicRef string `json:"public_ref"`
}

// System defines the blob storage gateway. Implementations handle the
// underlying storage mechanism (filesystem, object store) while guaranteeing
// that bytes are durably retrievable via the returned locator before Upload
// returns. Callers are responsible for not invoking Upload twice for one
// intended artifact; the gateway only guarantees fresh, collision-free keys.
type System interface {
	// Upload durably stores data under a newly generated key and returns
	// its locator. No locator is observable if the write fails.
	// Returns ErrQuotaExceeded when the backing store is out of space.
	Upload(ctx context.Context, data []byte, contentType string) (Locator, error)

	// Retrieve returns the data stored at the specified key.
	// Returns ErrNotFound if the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)

	// Delete removes the data at the specified key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Exists checks whether a key is present and readable.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicRef resolves a key to its public URL.
	PublicRef(key string) string

	// Start registers lifecycle hooks with the coordinator.
	// For filesystem storage, this creates the base directory.
	Start(lc *lifecycle.Coordinator) error
}
