package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the menu API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Health.Alive)
	r.GET("/status", h.Health.CheckHealth)
}
