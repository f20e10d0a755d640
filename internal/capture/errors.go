package capture

import (
	"errors"
	"net/http"
)

// Domain errors for capture session operations.
var (
	// ErrPermissionDenied indicates the capture device permission was not granted.
	ErrPermissionDenied = errors.New("capture device permission denied")

	// ErrDeviceBusy indicates another session is already recording for the actor.
	ErrDeviceBusy = errors.New("another capture session is already active")

	// ErrNothingRecorded indicates a recording stopped with zero duration or no bytes.
	ErrNothingRecorded = errors.New("nothing recorded")

	// ErrNothingStaged indicates staged content was missing or blank.
	ErrNothingStaged = errors.New("no content staged")

	// ErrInvalidTransition indicates the requested state change is not permitted.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrSessionNotFound indicates the session id is unknown.
	ErrSessionNotFound = errors.New("capture session not found")

	// ErrActorRequired indicates the request carried no actor identity.
	ErrActorRequired = errors.New("actor id required")
)

// MapHTTPStatus converts capture errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrPermissionDenied) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrDeviceBusy) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNothingRecorded) || errors.Is(err, ErrNothingStaged) {
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, ErrInvalidTransition) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrSessionNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrActorRequired) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
