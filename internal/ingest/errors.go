package ingest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/internal/validation"
	"github.com/echomindhq/echomind/pkg/storage"
)

// Pipeline errors surfaced by the coordinator.
var (
	// ErrStorageUnavailable indicates the blob store could not be reached.
	ErrStorageUnavailable = errors.New("blob store unavailable")

	// ErrStorageQuotaExceeded indicates the blob store rejected the upload for lack of space.
	ErrStorageQuotaExceeded = errors.New("blob store quota exceeded")

	// ErrMetadataUnavailable indicates the meeting registry could not be reached.
	ErrMetadataUnavailable = errors.New("metadata store unavailable")
)

// Phase identifies where in the pipeline an ingestion failed.
type Phase string

// Pipeline phases in execution order.
const (
	PhaseValidate Phase = "validate"
	PhaseUpload   Phase = "upload"
	PhaseRegister Phase = "register"
)

// Error describes an ingestion failure: the phase that failed, the
// underlying cause, and whether a stored blob could not be cleaned up.
// OrphanBlob is true only when registration failed and the compensating
// delete also failed, leaving unreferenced bytes at OrphanKey.
type Error struct {
	Phase      Phase  `json:"phase"`
	OrphanBlob bool   `json:"orphan_blob"`
	OrphanKey  string `json:"orphan_key,omitempty"`
	Err        error  `json:"-"`
}

func (e *Error) Error() string {
	if e.OrphanBlob {
		return fmt.Sprintf("ingest %s failed (orphaned blob %s): %v", e.Phase, e.OrphanKey, e.Err)
	}
	return fmt.Sprintf("ingest %s failed: %v", e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MapHTTPStatus converts pipeline errors to appropriate HTTP status codes,
// delegating to the owning domain for wrapped causes.
func MapHTTPStatus(err error) int {
	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		err = pipelineErr.Err
	}

	if errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrMetadataUnavailable) {
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, ErrStorageQuotaExceeded) {
		return http.StatusInsufficientStorage
	}

	if status := validation.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := capture.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if status := meetings.MapHTTPStatus(err); status != http.StatusInternalServerError {
		return status
	}
	if errors.Is(err, storage.ErrQuotaExceeded) {
		return http.StatusInsufficientStorage
	}
	return http.StatusInternalServerError
}
