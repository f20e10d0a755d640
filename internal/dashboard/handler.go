package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/echomindhq/echomind/pkg/handlers"
	"github.com/echomindhq/echomind/pkg/routes"
)

// Handler serves the aggregated dashboard view.
type Handler struct {
	view   *View
	logger *slog.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(view *View, logger *slog.Logger) *Handler {
	return &Handler{
		view:   view,
		logger: logger.With("handler", "dashboard"),
	}
}

// Routes returns the dashboard route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/dashboard",
		Tags:        []string{"Dashboard"},
		Description: "Aggregated meeting dashboard",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Show, OpenAPI: Spec.Show},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh, OpenAPI: Spec.Refresh},
		},
	}
}

// Show returns the current snapshot without touching the registry.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.view.Snapshot())
}

// Refresh rebuilds the snapshot from the registry and returns the result.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.view.Refresh(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, h.view.Snapshot())
}
