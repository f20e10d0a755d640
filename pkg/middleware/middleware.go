// Package middleware provides HTTP middleware and a composable middleware stack.
package middleware

import "net/http"

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(http.Handler) http.Handler

// System composes an ordered stack of middleware.
type System interface {
	// Use appends middleware to the stack.
	Use(m Middleware)

	// Apply wraps the handler with the stack. The first middleware added
	// is the outermost.
	Apply(h http.Handler) http.Handler
}

type stack struct {
	middleware []Middleware
}

// New creates an empty middleware stack.
func New() System {
	return &stack{}
}

func (s *stack) Use(m Middleware) {
	s.middleware = append(s.middleware, m)
}

func (s *stack) Apply(h http.Handler) http.Handler {
	for i := len(s.middleware) - 1; i >= 0; i-- {
		h = s.middleware[i](h)
	}
	return h
}
