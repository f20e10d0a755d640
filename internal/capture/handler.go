package capture

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/echomindhq/echomind/pkg/handlers"
	"github.com/echomindhq/echomind/pkg/routes"
	"github.com/google/uuid"
)

// ActorHeader carries the caller identity supplied by the identity collaborator.
const ActorHeader = "X-Actor-Id"

// Handler provides HTTP endpoints for capture session lifecycle operations.
type Handler struct {
	manager       *Manager
	relay         *RelayDevice
	logger        *slog.Logger
	maxUploadSize int64
}

// NewHandler creates a capture handler. The relay receives recorded bytes
// pushed by clients on stop; maxUploadSize bounds request bodies.
func NewHandler(manager *Manager, relay *RelayDevice, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		manager:       manager,
		relay:         relay,
		logger:        logger.With("handler", "captures"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the capture endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/captures",
		Tags:        []string{"Captures"},
		Description: "Capture session lifecycle",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{id}", Handler: h.Show, OpenAPI: Spec.Show},
			{Method: "POST", Pattern: "/{id}/start", Handler: h.Start, OpenAPI: Spec.Start},
			{Method: "POST", Pattern: "/{id}/stop", Handler: h.Stop, OpenAPI: Spec.Stop},
			{Method: "POST", Pattern: "/{id}/stage", Handler: h.Stage, OpenAPI: Spec.Stage},
			{Method: "POST", Pattern: "/{id}/cancel", Handler: h.Cancel, OpenAPI: Spec.Cancel},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Remove, OpenAPI: Spec.Remove},
		},
	}
}

type sessionView struct {
	ID          uuid.UUID  `json:"id"`
	ActorID     string     `json:"actor_id"`
	Kind        Kind       `json:"kind"`
	State       State      `json:"state"`
	ContentType string     `json:"content_type,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

func viewOf(s *Session) sessionView {
	view := sessionView{
		ID:          s.ID(),
		ActorID:     s.ActorID(),
		Kind:        s.Kind(),
		State:       s.State(),
		ContentType: s.ContentType(),
	}
	if started := s.StartedAt(); !started.IsZero() {
		view.StartedAt = &started
	}
	if ended := s.EndedAt(); !ended.IsZero() {
		view.EndedAt = &ended
	}
	return view
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actorID := r.Header.Get(ActorHeader)

	var req struct {
		Kind Kind `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.manager.Create(actorID, req.Kind)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, viewOf(session))
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, viewOf(session))
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Start(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, viewOf(session))
}

// Stop receives the recorded bytes from the client, relays them to the
// capture device bridge, and stops the session.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.readPayload(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	// Deliver only while recording; otherwise Stop fails below and the
	// bytes would sit in the relay with no EndCapture to collect them.
	if len(data) > 0 && session.State() == StateRecording {
		h.relay.Deliver(session.ID(), data, contentType)
	}

	if err := session.Stop(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, viewOf(session))
}

// Stage attaches uploaded file content (multipart) or pasted transcript
// text (JSON body with a "text" field) to the session.
func (h *Handler) Stage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var data []byte
	var contentType string
	var err error

	if session.Kind() == KindPastedText {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, h.maxUploadSize+1)).Decode(&req); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		data, contentType = []byte(req.Text), "text/plain"
	} else {
		data, contentType, err = h.readPayload(r)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
	}

	if err := session.Stage(data, contentType); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, viewOf(session))
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := session.Cancel(); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, viewOf(session))
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.manager.Remove(session.ID()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// session resolves the path id to a session owned by the requesting actor.
// Sessions belonging to other actors are reported as not found.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return nil, false
	}

	session, err := h.manager.Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}

	if actor := r.Header.Get(ActorHeader); actor == "" || actor != session.ActorID() {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrSessionNotFound)
		return nil, false
	}

	return session, true
}

// readPayload extracts bytes from a multipart "file" field or the raw
// request body, bounded by the configured upload size.
func (h *Handler) readPayload(r *http.Request) ([]byte, string, error) {
	contentType := r.Header.Get("Content-Type")

	if r.MultipartForm != nil || isMultipart(contentType) {
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			return nil, "", err
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
		if err != nil {
			return nil, "", err
		}
		return data, header.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, h.maxUploadSize+1))
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(contentType, "multipart/form-data")
}
