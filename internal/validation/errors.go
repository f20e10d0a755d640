package validation

import (
	"errors"
	"net/http"
)

// Input errors. These are resolved before any I/O is performed and are not
// retryable without user action.
var (
	ErrEmptyPayload    = errors.New("payload is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrUnsupportedType = errors.New("unsupported content type")
)

// MapHTTPStatus converts validation errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrEmptyPayload) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrUnsupportedType) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}
