package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/echomindhq/echomind/internal/validation"
)

const maxSize = 10 * 1024 * 1024

func TestValidatePayload(t *testing.T) {
	v := validation.New(maxSize)

	cases := []struct {
		name        string
		sizeBytes   int64
		contentType string
		wantErr     error
	}{
		{"valid m4a", 1024, "audio/x-m4a", nil},
		{"valid mp3", 1024, "audio/mpeg", nil},
		{"valid wav", 1024, "audio/wav", nil},
		{"valid aac", 1024, "audio/aac", nil},
		{"valid text", 1024, "text/plain", nil},
		{"valid doc", 1024, "application/msword", nil},
		{"valid docx", 1024, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil},
		{"at limit", maxSize, "audio/mpeg", nil},
		{"empty payload", 0, "audio/mpeg", validation.ErrEmptyPayload},
		{"negative size", -1, "audio/mpeg", validation.ErrEmptyPayload},
		{"over limit", maxSize + 1, "audio/mpeg", validation.ErrFileTooLarge},
		{"unsupported pdf", 1024, "application/pdf", validation.ErrUnsupportedType},
		{"unsupported video", 1024, "video/mp4", validation.ErrUnsupportedType},
		{"blank type", 1024, "", validation.ErrUnsupportedType},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidatePayload(tc.sizeBytes, tc.contentType)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidatePayload(%d, %q) error = %v, want %v", tc.sizeBytes, tc.contentType, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePayload_NormalizesContentType(t *testing.T) {
	v := validation.New(maxSize)

	cases := []string{
		"text/plain; charset=utf-8",
		"TEXT/PLAIN",
		" text/plain ",
	}

	for _, ct := range cases {
		if err := v.ValidatePayload(1024, ct); err != nil {
			t.Errorf("ValidatePayload(1024, %q) failed: %v", ct, err)
		}
	}
}

func TestValidatePayload_EmptyCheckedBeforeSize(t *testing.T) {
	v := validation.New(maxSize)

	// A zero-size payload of a disallowed type reports emptiness, not type.
	err := v.ValidatePayload(0, "video/mp4")
	if !errors.Is(err, validation.ErrEmptyPayload) {
		t.Errorf("ValidatePayload(0, video/mp4) error = %v, want %v", err, validation.ErrEmptyPayload)
	}
}

func TestValidateText(t *testing.T) {
	v := validation.New(64)

	cases := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"valid", "meeting notes", nil},
		{"empty", "", validation.ErrEmptyPayload},
		{"whitespace only", "  \n\t  ", validation.ErrEmptyPayload},
		{"over limit", string(make([]byte, 65)), validation.ErrFileTooLarge},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.ValidateText(tc.text)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ValidateText() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewWithTypes(t *testing.T) {
	v := validation.NewWithTypes(maxSize, []string{"application/pdf"})

	if err := v.ValidatePayload(1024, "application/pdf"); err != nil {
		t.Errorf("ValidatePayload() failed for allowed type: %v", err)
	}
	if err := v.ValidatePayload(1024, "audio/mpeg"); !errors.Is(err, validation.ErrUnsupportedType) {
		t.Errorf("ValidatePayload() error = %v, want %v", err, validation.ErrUnsupportedType)
	}
}

func TestNewWithTypes_NormalizesEntries(t *testing.T) {
	// Configured entries may carry casing or parameters; they must match
	// incoming types the same way the defaults do.
	v := validation.NewWithTypes(maxSize, []string{
		"Application/PDF",
		"text/plain; charset=utf-8",
	})

	cases := []string{
		"application/pdf",
		"APPLICATION/PDF",
		"text/plain",
		"text/plain; charset=iso-8859-1",
	}

	for _, ct := range cases {
		if err := v.ValidatePayload(1024, ct); err != nil {
			t.Errorf("ValidatePayload(1024, %q) failed: %v", ct, err)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{validation.ErrEmptyPayload, http.StatusUnprocessableEntity},
		{validation.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{validation.ErrUnsupportedType, http.StatusUnsupportedMediaType},
		{errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := validation.MapHTTPStatus(tc.err); got != tc.want {
			t.Errorf("MapHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
