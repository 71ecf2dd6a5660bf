package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/handler"
	"github.com/deppfellow/menu-service/internal/model"
)

// registerResourceRoutes mounts the CRUD routes of one family on g.
//
// Families with a parent get the by-parent listing twice: under
// /list/:parentId and directly under /:parentId. Static segments
// (/all, /add, ...) take priority over the parameter route.
func registerResourceRoutes[P model.Payload, S any, V any](g *echo.Group, h *handler.ResourceHandler[P, S, V]) {
	g.GET("/all", h.List())
	g.POST("/add", h.Create())
	g.PUT("/edit/:"+handler.ParamID, h.Update())
	g.DELETE("/delete/:"+handler.ParamID, h.Delete())

	if h.HasParent() {
		listByParent := h.ListByParent()
		g.GET("/list/:"+handler.ParamParentID, listByParent)
		g.GET("/:"+handler.ParamParentID, listByParent)
	}
}
