// Package middleware holds the global HTTP middleware.
//
// These intercept requests for cross-cutting concerns: request ids,
// request-scoped logging, New Relic tracing, CORS, secure headers,
// rate limiting, panic recovery and the global error handler.
package middleware

import (
	"github.com/deppfellow/menu-service/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	RateLimit       *RateLimitMiddleware
}

// NewMiddlewares constructs all middleware components. Tracing degrades to
// a no-op when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
	}
}
