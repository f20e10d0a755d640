// Package docs serves the interactive API reference. The page shell is
// embedded at compile time and renders the generated specification with
// Scalar.
package docs

import (
	_ "embed"
	"net/http"

	"github.com/echomindhq/echomind/pkg/routes"
)

//go:embed index.html
var indexHTML []byte

// Handler serves the API reference page and the specification it renders.
type Handler struct {
	spec []byte
}

// NewHandler creates a documentation handler over the generated spec.
func NewHandler(spec []byte) *Handler {
	return &Handler{spec: spec}
}

// Routes returns the route group for documentation endpoints. The spec is
// served beside the page so the reference resolves it with a relative URL.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Tags:        []string{"Documentation"},
		Description: "Interactive API documentation",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.serveIndex},
			{Method: "GET", Pattern: "/openapi.json", Handler: h.serveSpec},
		},
	}
}

func (h *Handler) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

func (h *Handler) serveSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(h.spec)
}
