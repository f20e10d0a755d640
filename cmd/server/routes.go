package main

import (
	"log/slog"
	"net/http"

	"github.com/echomindhq/echomind/internal/capture"
	"github.com/echomindhq/echomind/internal/config"
	"github.com/echomindhq/echomind/internal/dashboard"
	"github.com/echomindhq/echomind/internal/ingest"
	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/pkg/handlers"
	"github.com/echomindhq/echomind/pkg/lifecycle"
	"github.com/echomindhq/echomind/pkg/openapi"
	"github.com/echomindhq/echomind/pkg/routes"
	"github.com/echomindhq/echomind/pkg/storage"
	"github.com/echomindhq/echomind/web/docs"
)

type handlerSet struct {
	captures  *capture.Handler
	ingest    *ingest.Handler
	meetings  *meetings.Handler
	dashboard *dashboard.Handler
	store     storage.System
	lc        *lifecycle.Coordinator
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, logger *slog.Logger, set handlerSet) error {
	api := routes.New(mux, cfg.API.BasePath)
	api.RegisterGroup(set.captures.Routes())
	api.RegisterGroup(set.ingest.Routes())
	api.RegisterGroup(set.meetings.Routes())
	api.RegisterGroup(set.dashboard.Routes())

	components := openapi.NewComponents()
	components.AddSchemas(capture.Spec.Schemas())
	components.AddSchemas(ingest.Spec.Schemas())
	components.AddSchemas(meetings.Spec.Schemas())
	components.AddSchemas(dashboard.Spec.Schemas())

	specBytes, err := loadOrGenerateSpec(cfg, api, components)
	if err != nil {
		return err
	}

	docsHandler := docs.NewHandler(specBytes)
	api.RegisterGroup(docsHandler.Routes())

	// Stored blobs resolve under /blobs/{key} per their public refs.
	mux.HandleFunc("GET /blobs/{key...}", func(w http.ResponseWriter, r *http.Request) {
		data, err := set.store.Retrieve(r.Context(), r.PathValue("key"))
		if err != nil {
			handlers.RespondError(w, logger, storage.MapHTTPStatus(err), err)
			return
		}
		w.Write(data)
	})

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !set.lc.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "starting"})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	return nil
}
