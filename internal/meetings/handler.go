package meetings

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/echomindhq/echomind/pkg/handlers"
	"github.com/echomindhq/echomind/pkg/pagination"
	"github.com/echomindhq/echomind/pkg/routes"
	"github.com/google/uuid"
)

// Handler provides read-only HTTP endpoints over the meeting registry.
// Meetings are created exclusively through the ingestion pipeline.
type Handler struct {
	meetings   System
	pagination pagination.Config
	logger     *slog.Logger
}

// NewHandler creates a meetings handler.
func NewHandler(meetings System, cfg pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		meetings:   meetings,
		pagination: cfg,
		logger:     logger.With("handler", "meetings"),
	}
}

// Routes returns the meeting endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/meetings",
		Tags:        []string{"Meetings"},
		Description: "Meeting registry",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/count", Handler: h.Count, OpenAPI: Spec.Count},
			{Method: "GET", Pattern: "/{id}", Handler: h.Show, OpenAPI: Spec.Find},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	var filters Filters
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filters.Kind = &kind
	}
	if raw := r.URL.Query().Get("is_completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		filters.IsCompleted = &completed
	}

	result, err := h.meetings.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.meetings.Count(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	meeting, err := h.meetings.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, meeting)
}
