// Package router builds the echo router.
//
// It installs the global middleware chain and the error handler, then
// registers the system routes and one route group per resource family.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/handler"
	"github.com/deppfellow/menu-service/internal/middleware"
	"github.com/deppfellow/menu-service/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	if middlewares.RateLimit.Enabled() {
		router.Use(middlewares.RateLimit.Limit())
	}

	registerSystemRoutes(router, h)

	registerResourceRoutes(router.Group("/quotes"), h.Quotes)
	registerResourceRoutes(router.Group("/sections"), h.Sections)
	registerResourceRoutes(router.Group("/categories"), h.Categories)
	registerResourceRoutes(router.Group("/items"), h.Items)

	return router
}
