package storage

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// uploadPrefix is the path segment under which all captured content is stored.
const uploadPrefix = "uploads"

var extensions = map[string]string{
	"audio/mpeg":         "mp3",
	"audio/x-m4a":        "m4a",
	"audio/wav":          "wav",
	"audio/aac":          "aac",
	"text/plain":         "txt",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

// newKey generates a fresh, collision-resistant storage key for an upload.
// ULIDs encode millisecond timestamps in their leading characters, so keys
// under uploads/ remain time-ordered while staying unique under concurrent
// uploads.
func newKey(contentType string) string {
	ext, ok := extensions[contentType]
	if !ok {
		ext = "bin"
	}
	return fmt.Sprintf("%s/%s.%s", uploadPrefix, ulid.Make().String(), ext)
}
