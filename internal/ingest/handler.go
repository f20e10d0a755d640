package ingest

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/pkg/handlers"
	"github.com/echomindhq/echomind/pkg/routes"
	"github.com/google/uuid"
)

// Handler exposes the submission endpoint that feeds the pipeline.
type Handler struct {
	coordinator *Coordinator
	manager     *capture.Manager
	logger      *slog.Logger
}

// NewHandler creates an ingestion handler.
func NewHandler(coordinator *Coordinator, manager *capture.Manager, logger *slog.Logger) *Handler {
	return &Handler{
		coordinator: coordinator,
		manager:     manager,
		logger:      logger.With("handler", "ingest"),
	}
}

// Routes returns the submission route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/captures",
		Tags:        []string{"Ingestion"},
		Description: "Capture submission",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/{id}/submit", Handler: h.Submit, OpenAPI: Spec.Submit},
		},
	}
}

// Submit runs the ingestion pipeline for a session owned by the requesting
// actor. Failure responses include the pipeline phase and, for registration
// failures where cleanup also failed, the orphaned blob flag.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.manager.Get(id)
	if err != nil {
		handlers.RespondError(w, h.logger, capture.MapHTTPStatus(err), err)
		return
	}
	if actor := r.Header.Get(capture.ActorHeader); actor == "" || actor != session.ActorID() {
		handlers.RespondError(w, h.logger, http.StatusNotFound, capture.ErrSessionNotFound)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	meeting, err := h.coordinator.Ingest(r.Context(), id, req)
	if err != nil {
		h.respondFailure(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, meeting)
}

// respondFailure reports pipeline errors with their phase so clients can
// distinguish a rejected payload from an infrastructure failure.
func (h *Handler) respondFailure(w http.ResponseWriter, err error) {
	status := MapHTTPStatus(err)

	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		h.logger.Error("ingestion failed",
			"phase", pipelineErr.Phase,
			"orphan_blob", pipelineErr.OrphanBlob,
			"error", pipelineErr.Err,
		)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"error":       pipelineErr.Err.Error(),
			"phase":       pipelineErr.Phase,
			"orphan_blob": pipelineErr.OrphanBlob,
		})
		return
	}

	handlers.RespondError(w, h.logger, status, err)
}
