// Package validation provides the pure pre-ingestion checks for captured
// payloads. Checks are deterministic, perform no I/O, and may be run any
// number of times before bytes are handed to storage.
package validation

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

// AllowedContentTypes is the default accept list for captured content:
// the audio formats produced by the recording clients, plain text, and the
// two Word document types the clients let users pick.
var AllowedContentTypes = []string{
	"audio/mpeg",
	"audio/x-m4a",
	"audio/wav",
	"audio/aac",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Validator checks payload size and content type against configured limits.
// The zero value is not usable; construct with New.
type Validator struct {
	maxSizeBytes int64
	allowed      map[string]struct{}
}

// New creates a Validator enforcing the given size limit over the default
// content-type accept list.
func New(maxSizeBytes int64) Validator {
	return NewWithTypes(maxSizeBytes, AllowedContentTypes)
}

// NewWithTypes creates a Validator with an explicit content-type accept list.
// Entries are normalized the same way incoming types are, so configured
// values may carry casing or parameters.
func NewWithTypes(maxSizeBytes int64, contentTypes []string) Validator {
	allowed := make(map[string]struct{}, len(contentTypes))
	for _, ct := range contentTypes {
		allowed[normalize(ct)] = struct{}{}
	}
	return Validator{
		maxSizeBytes: maxSizeBytes,
		allowed:      allowed,
	}
}

// MaxSizeBytes returns the configured payload size limit.
func (v Validator) MaxSizeBytes() int64 {
	return v.maxSizeBytes
}

// ValidatePayload checks that a payload is non-empty, within the size limit,
// and of an accepted content type.
func (v Validator) ValidatePayload(sizeBytes int64, contentType string) error {
	if sizeBytes <= 0 {
		return ErrEmptyPayload
	}
	if sizeBytes > v.maxSizeBytes {
		return fmt.Errorf("%w: %s exceeds limit of %s",
			ErrFileTooLarge,
			units.BytesSize(float64(sizeBytes)),
			units.BytesSize(float64(v.maxSizeBytes)),
		)
	}
	if _, ok := v.allowed[normalize(contentType)]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return nil
}

// ValidateText checks that pasted transcript text is non-empty after
// trimming and within the size limit.
func (v Validator) ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyPayload
	}
	if int64(len(text)) > v.maxSizeBytes {
		return fmt.Errorf("%w: transcript exceeds limit of %s",
			ErrFileTooLarge,
			units.BytesSize(float64(v.maxSizeBytes)),
		)
	}
	return nil
}

// normalize strips content-type parameters such as "; charset=utf-8".
func normalize(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
