package storage_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/echomindhq/echomind/pkg/lifecycle"
	"github.com/echomindhq/echomind/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testSystem(t *testing.T) storage.System {
	t.Helper()

	cfg := &storage.Config{
		BasePath:      t.TempDir(),
		PublicBaseURL: "http://localhost:8080/blobs",
	}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	lc.WaitForStartup()

	return sys
}

func TestNew_EmptyBasePath(t *testing.T) {
	cfg := &storage.Config{PublicBaseURL: "http://localhost:8080/blobs"}

	_, err := storage.New(cfg, testLogger())
	if err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestUpload_Retrieve_RoundTrip(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()
	data := []byte("recorded audio bytes")

	locator, err := sys.Upload(ctx, data, "audio/x-m4a")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	retrieved, err := sys.Retrieve(ctx, locator.Key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}

	if string(retrieved) != string(data) {
		t.Errorf("Retrieved data = %q, want %q", retrieved, data)
	}
}

func TestUpload_KeyFormat(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	cases := []struct {
		contentType string
		wantExt     string
	}{
		{"audio/mpeg", ".mp3"},
		{"audio/x-m4a", ".m4a"},
		{"audio/wav", ".wav"},
		{"text/plain", ".txt"},
		{"application/msword", ".doc"},
		{"application/octet-stream", ".bin"},
	}

	for _, tc := range cases {
		t.Run(tc.contentType, func(t *testing.T) {
			locator, err := sys.Upload(ctx, []byte("data"), tc.contentType)
			if err != nil {
				t.Fatalf("Upload() failed: %v", err)
			}

			if !strings.HasPrefix(locator.Key, "uploads/") {
				t.Errorf("Key = %q, want uploads/ prefix", locator.Key)
			}
			if !strings.HasSuffix(locator.Key, tc.wantExt) {
				t.Errorf("Key = %q, want %s extension", locator.Key, tc.wantExt)
			}
		})
	}
}

func TestUpload_FreshKeys(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()
	data := []byte("identical content")

	first, err := sys.Upload(ctx, data, "audio/mpeg")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	second, err := sys.Upload(ctx, data, "audio/mpeg")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	if first.Key == second.Key {
		t.Errorf("Upload() reused key %q for a second upload of the same content", first.Key)
	}
}

func TestUpload_PublicRef(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	locator, err := sys.Upload(ctx, []byte("data"), "audio/wav")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	want := "http://localhost:8080/blobs/" + locator.Key
	if locator.PublicRef != want {
		t.Errorf("PublicRef = %q, want %q", locator.PublicRef, want)
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys := testSystem(t)

	_, err := sys.Retrieve(context.Background(), "uploads/missing.mp3")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDelete_RemovesBlob(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	locator, err := sys.Upload(ctx, []byte("delete me"), "audio/aac")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	if err := sys.Delete(ctx, locator.Key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	_, err = sys.Retrieve(ctx, locator.Key)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Error("Blob still exists after Delete()")
	}
}

func TestDelete_NonExistent_NoError(t *testing.T) {
	sys := testSystem(t)

	if err := sys.Delete(context.Background(), "uploads/missing.mp3"); err != nil {
		t.Errorf("Delete() on non-existent key returned error: %v", err)
	}
}

func TestExists(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	locator, err := sys.Upload(ctx, []byte("content"), "text/plain")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	exists, err := sys.Exists(ctx, locator.Key)
	if err != nil {
		t.Fatalf("Exists() failed: %v", err)
	}
	if !exists {
		t.Error("Exists() = false for stored blob, want true")
	}

	exists, err = sys.Exists(ctx, "uploads/missing.txt")
	if err != nil {
		t.Fatalf("Exists() returned error for missing key: %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing key, want false")
	}
}

func TestInvalidKey_PathTraversal(t *testing.T) {
	sys := testSystem(t)
	ctx := context.Background()

	traversalKeys := []string{
		"",
		"../escape.txt",
		"uploads/../../escape.txt",
		"/absolute/path.txt",
	}

	for _, key := range traversalKeys {
		t.Run(key, func(t *testing.T) {
			if _, err := sys.Retrieve(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Retrieve(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
			}
			if err := sys.Delete(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Delete(%q) error = %v, want %v", key, err, storage.ErrInvalidKey)
			}
		})
	}
}

func TestUpload_NoPartialState(t *testing.T) {
	base := t.TempDir()
	cfg := &storage.Config{BasePath: base, PublicBaseURL: "http://localhost:8080/blobs"}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	lc := lifecycle.New()
	sys.Start(lc)
	lc.WaitForStartup()

	locator, err := sys.Upload(context.Background(), []byte("durable"), "audio/mpeg")
	if err != nil {
		t.Fatalf("Upload() failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, locator.Key+".tmp")); !os.IsNotExist(err) {
		t.Error("Temp file left behind after successful Upload()")
	}
}
