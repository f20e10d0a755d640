// Package routes registers HTTP handlers with an http.ServeMux using
// route groups. Handlers contribute Group values; the application mounts
// them under a shared base path. Registered routes are retained so the
// server can assemble the OpenAPI document from their annotations.
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/echomindhq/echomind/pkg/openapi"
)

// Route binds an HTTP method and path pattern to a handler. The optional
// OpenAPI operation documents the route in the generated specification.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group collects related routes under a shared prefix. Tags label the
// group's operations in the generated specification.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
}

// System registers routes and route groups with a mux.
type System interface {
	// RegisterRoute adds a single route.
	RegisterRoute(route Route)

	// RegisterGroup adds all routes in a group, prefixed with the group prefix.
	RegisterGroup(group Group)

	// Routes returns the individually registered routes.
	Routes() []Route

	// Groups returns the registered route groups.
	Groups() []Group

	// BasePath returns the path prefix all registrations are mounted under.
	BasePath() string
}

type system struct {
	mux      *http.ServeMux
	basePath string
	routes   []Route
	groups   []Group
}

// New creates a route registration system over the mux. All registered
// patterns are prefixed with basePath.
func New(mux *http.ServeMux, basePath string) System {
	return &system{
		mux:      mux,
		basePath: strings.TrimSuffix(basePath, "/"),
		routes:   []Route{},
		groups:   []Group{},
	}
}

func (s *system) RegisterRoute(route Route) {
	pattern := fmt.Sprintf("%s %s%s", route.Method, s.basePath, route.Pattern)
	s.mux.HandleFunc(pattern, route.Handler)
	s.routes = append(s.routes, route)
}

func (s *system) RegisterGroup(group Group) {
	for _, route := range group.Routes {
		pattern := fmt.Sprintf("%s %s%s%s", route.Method, s.basePath, group.Prefix, route.Pattern)
		s.mux.HandleFunc(pattern, route.Handler)
	}
	s.groups = append(s.groups, group)
}

func (s *system) Routes() []Route {
	return s.routes
}

func (s *system) Groups() []Group {
	return s.groups
}

func (s *system) BasePath() string {
	return s.basePath
}
