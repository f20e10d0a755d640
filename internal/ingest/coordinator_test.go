package ingest_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/internal/ingest"
	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/internal/validation"
	"github.com/echomindhq/echomind/pkg/lifecycle"
	"github.com/echomindhq/echomind/pkg/pagination"
	"github.com/echomindhq/echomind/pkg/storage"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeStorage counts gateway calls and fails on demand.
type fakeStorage struct {
	mu          sync.Mutex
	uploads     int
	deletes     int
	uploadErr   error
	deleteErr   error
	lastKey     string
	deletedKeys []string
}

func (f *fakeStorage) Upload(ctx context.Context, data []byte, contentType string) (storage.Locator, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads++
	if f.uploadErr != nil {
		return storage.Locator{}, f.uploadErr
	}
	f.lastKey = "uploads/" + uuid.NewString() + ".bin"
	return storage.Locator{Key: f.lastKey, PublicRef: "http://localhost/blobs/" + f.lastKey}, nil
}

func (f *fakeStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	return nil, storage.ErrNotFound
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deletes++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedKeys = append(f.deletedKeys, key)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, key string) (bool, error) { return false, nil }

func (f *fakeStorage) PublicRef(key string) string { return "http://localhost/blobs/" + key }

func (f *fakeStorage) Start(lc *lifecycle.Coordinator) error { return nil }

// fakeRegistry counts register calls and fails on demand.
type fakeRegistry struct {
	mu          sync.Mutex
	registers   int
	registerErr error
	lastCmd     meetings.CreateCommand
}

func (f *fakeRegistry) Register(ctx context.Context, cmd meetings.CreateCommand) (meetings.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.registers++
	if f.registerErr != nil {
		return meetings.Meeting{}, f.registerErr
	}
	f.lastCmd = cmd
	return meetings.Meeting{
		ID:          uuid.New(),
		Title:       cmd.Title,
		Summary:     cmd.Summary,
		Kind:        cmd.Kind,
		Locator:     cmd.Locator,
		Transcript:  cmd.Transcript,
		ContentType: cmd.ContentType,
		SizeBytes:   cmd.SizeBytes,
		CreatedAt:   time.Now(),
	}, nil
}

func (f *fakeRegistry) List(ctx context.Context, page pagination.PageRequest, filters meetings.Filters) (pagination.PageResult[meetings.Meeting], error) {
	return pagination.PageResult[meetings.Meeting]{}, nil
}

func (f *fakeRegistry) Count(ctx context.Context) (int, error) { return 0, nil }

func (f *fakeRegistry) Find(ctx context.Context, id uuid.UUID) (meetings.Meeting, error) {
	return meetings.Meeting{}, meetings.ErrNotFound
}

func (f *fakeRegistry) All(ctx context.Context) ([]meetings.Meeting, error) { return nil, nil }

func (f *fakeRegistry) Start(lc *lifecycle.Coordinator) {}

type fixture struct {
	manager     *capture.Manager
	store       *fakeStorage
	registry    *fakeRegistry
	coordinator *ingest.Coordinator
}

const inlineLimit = 64

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := &fakeStorage{}
	registry := &fakeRegistry{}
	manager := capture.NewManager(capture.NewRelayDevice(true), testLogger())

	coordinator := ingest.NewCoordinator(
		manager,
		store,
		registry,
		validation.New(10*1024*1024),
		testLogger(),
		time.Second,
		inlineLimit,
	)

	return &fixture{
		manager:     manager,
		store:       store,
		registry:    registry,
		coordinator: coordinator,
	}
}

func (f *fixture) stagedSession(t *testing.T, kind capture.Kind, data []byte, contentType string) *capture.Session {
	t.Helper()

	session, err := f.manager.Create("actor-1", kind)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := session.Stage(data, contentType); err != nil {
		t.Fatalf("Stage() failed: %v", err)
	}
	return session
}

func TestIngest_FileUpload(t *testing.T) {
	f := newFixture(t)
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc bytes"), "application/msword")

	meeting, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{Title: "Budget review"})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if session.State() != capture.StateFinalized {
		t.Errorf("State() = %s, want %s", session.State(), capture.StateFinalized)
	}
	if f.store.uploads != 1 {
		t.Errorf("uploads = %d, want 1", f.store.uploads)
	}
	if f.registry.registers != 1 {
		t.Errorf("registers = %d, want 1", f.registry.registers)
	}
	if meeting.Title != "Budget review" {
		t.Errorf("Title = %q, want %q", meeting.Title, "Budget review")
	}
	if meeting.Locator != f.store.lastKey {
		t.Errorf("Locator = %q, want %q", meeting.Locator, f.store.lastKey)
	}
}

func TestIngest_ShortTextStoredInline(t *testing.T) {
	f := newFixture(t)
	session := f.stagedSession(t, capture.KindPastedText, []byte("short transcript"), "text/plain")

	meeting, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{Title: "Notes"})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if f.store.uploads != 0 {
		t.Errorf("uploads = %d for inline text, want 0", f.store.uploads)
	}
	if meeting.Transcript != "short transcript" {
		t.Errorf("Transcript = %q, want inline text", meeting.Transcript)
	}
	if meeting.Locator != "" {
		t.Errorf("Locator = %q for inline text, want empty", meeting.Locator)
	}
}

func TestIngest_LongTextGoesToBlobStore(t *testing.T) {
	f := newFixture(t)

	long := make([]byte, inlineLimit+1)
	for i := range long {
		long[i] = 'a'
	}
	session := f.stagedSession(t, capture.KindPastedText, long, "text/plain")

	meeting, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{Title: "Long notes"})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if f.store.uploads != 1 {
		t.Errorf("uploads = %d for long text, want 1", f.store.uploads)
	}
	if meeting.Transcript != "" {
		t.Errorf("Transcript = %q for long text, want empty", meeting.Transcript)
	}
	if meeting.Locator == "" {
		t.Error("Locator empty for long text, want blob key")
	}
}

func TestIngest_ValidationFailure_NoSideEffects(t *testing.T) {
	f := newFixture(t)
	session := f.stagedSession(t, capture.KindFileUpload, []byte("video bytes"), "video/mp4")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if !errors.Is(err, validation.ErrUnsupportedType) {
		t.Fatalf("Ingest() error = %v, want %v", err, validation.ErrUnsupportedType)
	}

	var pipelineErr *ingest.Error
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("Ingest() error type = %T, want *ingest.Error", err)
	}
	if pipelineErr.Phase != ingest.PhaseValidate {
		t.Errorf("Phase = %s, want %s", pipelineErr.Phase, ingest.PhaseValidate)
	}

	if f.store.uploads != 0 || f.store.deletes != 0 {
		t.Errorf("storage calls = (%d uploads, %d deletes), want none", f.store.uploads, f.store.deletes)
	}
	if f.registry.registers != 0 {
		t.Errorf("registers = %d, want 0", f.registry.registers)
	}
	if session.State() != capture.StateStaged {
		t.Errorf("State() = %s, want %s for retry", session.State(), capture.StateStaged)
	}
}

func TestIngest_UploadFailure_NoRegistration(t *testing.T) {
	f := newFixture(t)
	f.store.uploadErr = errors.New("connection refused")
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if !errors.Is(err, ingest.ErrStorageUnavailable) {
		t.Fatalf("Ingest() error = %v, want %v", err, ingest.ErrStorageUnavailable)
	}

	var pipelineErr *ingest.Error
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("Ingest() error type = %T, want *ingest.Error", err)
	}
	if pipelineErr.Phase != ingest.PhaseUpload {
		t.Errorf("Phase = %s, want %s", pipelineErr.Phase, ingest.PhaseUpload)
	}

	if f.registry.registers != 0 {
		t.Errorf("registers = %d after upload failure, want 0", f.registry.registers)
	}
	if f.store.deletes != 0 {
		t.Errorf("deletes = %d after upload failure, want 0", f.store.deletes)
	}
	if session.State() != capture.StateStaged {
		t.Errorf("State() = %s, want %s", session.State(), capture.StateStaged)
	}
}

func TestIngest_QuotaExceeded(t *testing.T) {
	f := newFixture(t)
	f.store.uploadErr = storage.ErrQuotaExceeded
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if !errors.Is(err, ingest.ErrStorageQuotaExceeded) {
		t.Fatalf("Ingest() error = %v, want %v", err, ingest.ErrStorageQuotaExceeded)
	}
}

func TestIngest_RegisterFailure_CompensatingDelete(t *testing.T) {
	f := newFixture(t)
	f.registry.registerErr = meetings.ErrUnavailable
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if !errors.Is(err, ingest.ErrMetadataUnavailable) {
		t.Fatalf("Ingest() error = %v, want %v", err, ingest.ErrMetadataUnavailable)
	}

	var pipelineErr *ingest.Error
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("Ingest() error type = %T, want *ingest.Error", err)
	}
	if pipelineErr.Phase != ingest.PhaseRegister {
		t.Errorf("Phase = %s, want %s", pipelineErr.Phase, ingest.PhaseRegister)
	}
	if pipelineErr.OrphanBlob {
		t.Error("OrphanBlob = true after successful compensating delete, want false")
	}

	if f.store.deletes != 1 {
		t.Fatalf("deletes = %d, want exactly 1", f.store.deletes)
	}
	if f.store.deletedKeys[0] != f.store.lastKey {
		t.Errorf("deleted key = %q, want uploaded key %q", f.store.deletedKeys[0], f.store.lastKey)
	}
	if session.State() != capture.StateStaged {
		t.Errorf("State() = %s, want %s", session.State(), capture.StateStaged)
	}
}

func TestIngest_CompensatingDeleteFails_OrphanBlob(t *testing.T) {
	f := newFixture(t)
	f.registry.registerErr = meetings.ErrUnavailable
	f.store.deleteErr = errors.New("connection refused")
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})

	var pipelineErr *ingest.Error
	if !errors.As(err, &pipelineErr) {
		t.Fatalf("Ingest() error type = %T, want *ingest.Error", err)
	}
	if !pipelineErr.OrphanBlob {
		t.Error("OrphanBlob = false after failed compensating delete, want true")
	}
	if pipelineErr.OrphanKey != f.store.lastKey {
		t.Errorf("OrphanKey = %q, want %q", pipelineErr.OrphanKey, f.store.lastKey)
	}
}

func TestIngest_RegisterFailure_InlineText_NoDelete(t *testing.T) {
	f := newFixture(t)
	f.registry.registerErr = meetings.ErrUnavailable
	session := f.stagedSession(t, capture.KindPastedText, []byte("inline text"), "text/plain")

	_, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if !errors.Is(err, ingest.ErrMetadataUnavailable) {
		t.Fatalf("Ingest() error = %v, want %v", err, ingest.ErrMetadataUnavailable)
	}

	if f.store.deletes != 0 {
		t.Errorf("deletes = %d with no upload, want 0", f.store.deletes)
	}
}

func TestIngest_CancelledContext_StillCompensates(t *testing.T) {
	f := newFixture(t)
	f.registry.registerErr = meetings.ErrUnavailable
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Upload and register observe the cancelled context via their own
	// timeouts; the fakes ignore it, so registration fails on its stub
	// error and compensation must still run despite cancellation.
	_, err := f.coordinator.Ingest(ctx, session.ID(), ingest.Request{})
	if err == nil {
		t.Fatal("Ingest() succeeded with cancelled context, want error")
	}

	if f.store.deletes != 1 {
		t.Errorf("deletes = %d with cancelled caller context, want 1", f.store.deletes)
	}
}

func TestIngest_UnknownSession(t *testing.T) {
	f := newFixture(t)

	_, err := f.coordinator.Ingest(context.Background(), uuid.New(), ingest.Request{})
	if !errors.Is(err, capture.ErrSessionNotFound) {
		t.Errorf("Ingest() error = %v, want %v", err, capture.ErrSessionNotFound)
	}
}

func TestIngest_RetryAfterFailureGetsFreshKey(t *testing.T) {
	f := newFixture(t)
	f.registry.registerErr = meetings.ErrUnavailable
	session := f.stagedSession(t, capture.KindFileUpload, []byte("doc"), "application/msword")

	if _, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{}); err == nil {
		t.Fatal("Ingest() succeeded, want registration failure")
	}
	firstKey := f.store.lastKey

	f.registry.registerErr = nil
	meeting, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{Title: "Retry"})
	if err != nil {
		t.Fatalf("Ingest() retry failed: %v", err)
	}

	if meeting.Locator == firstKey {
		t.Error("retry reused the key from the failed attempt, want a fresh key")
	}
	if f.store.uploads != 2 {
		t.Errorf("uploads = %d across retry, want 2", f.store.uploads)
	}
}

func TestIngest_DefaultTitle(t *testing.T) {
	f := newFixture(t)
	session := f.stagedSession(t, capture.KindPastedText, []byte("text"), "text/plain")

	meeting, err := f.coordinator.Ingest(context.Background(), session.ID(), ingest.Request{})
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}
	if meeting.Title == "" {
		t.Error("Title empty when request omits one, want generated default")
	}
}

func TestMapHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &ingest.Error{Phase: ingest.PhaseValidate, Err: validation.ErrFileTooLarge}, http.StatusRequestEntityTooLarge},
		{"storage down", &ingest.Error{Phase: ingest.PhaseUpload, Err: ingest.ErrStorageUnavailable}, http.StatusServiceUnavailable},
		{"quota", &ingest.Error{Phase: ingest.PhaseUpload, Err: ingest.ErrStorageQuotaExceeded}, http.StatusInsufficientStorage},
		{"metadata down", &ingest.Error{Phase: ingest.PhaseRegister, Err: ingest.ErrMetadataUnavailable}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ingest.MapHTTPStatus(tc.err); got != tc.want {
				t.Errorf("MapHTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}
