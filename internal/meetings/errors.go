package meetings

import (
	"errors"
	"net/http"
)

// Domain errors for meeting registry operations.
var (
	// ErrNotFound indicates no meeting exists with the given identifier.
	ErrNotFound = errors.New("meeting not found")

	// ErrDuplicate indicates a meeting with the same identifier already exists.
	ErrDuplicate = errors.New("meeting already registered")

	// ErrInvalidCommand indicates the create command failed structural validation.
	ErrInvalidCommand = errors.New("invalid meeting")

	// ErrUnavailable indicates the metadata store could not be reached.
	ErrUnavailable = errors.New("meeting registry unavailable")
)

// MapHTTPStatus converts meeting errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidCommand) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
