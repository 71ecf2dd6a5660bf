package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/server"
	"github.com/deppfellow/menu-service/internal/service"
)

// ResourceHandler serves the CRUD endpoints of one resource family.
type ResourceHandler[P model.Payload, S any, V any] struct {
	Handler
	service *service.ResourceService[P, S, V]
}

func NewResourceHandler[P model.Payload, S any, V any](s *server.Server, svc *service.ResourceService[P, S, V]) *ResourceHandler[P, S, V] {
	return &ResourceHandler[P, S, V]{
		Handler: NewHandler(s),
		service: svc,
	}
}

// HasParent reports whether the family exposes the by-parent listing.
func (h *ResourceHandler[P, S, V]) HasParent() bool {
	return h.service.HasParent()
}

func (h *ResourceHandler[P, S, V]) create(c echo.Context, req *CreateRequest[P]) (*S, error) {
	return h.service.Create(c.Request().Context(), req.Payload)
}

func (h *ResourceHandler[P, S, V]) list(c echo.Context, _ *ListRequest) ([]V, error) {
	return h.service.List(c.Request().Context())
}

func (h *ResourceHandler[P, S, V]) listByParent(c echo.Context, req *ParentRequest) ([]V, error) {
	return h.service.ListByParent(c.Request().Context(), req.ParentID)
}

func (h *ResourceHandler[P, S, V]) update(c echo.Context, req *UpdateRequest[P]) (*V, error) {
	return h.service.Update(c.Request().Context(), req.ID, req.Payload)
}

func (h *ResourceHandler[P, S, V]) delete(c echo.Context, req *IDRequest) error {
	return h.service.Delete(c.Request().Context(), req.ID)
}

// Create handles POST /add and returns the stored record.
func (h *ResourceHandler[P, S, V]) Create() echo.HandlerFunc {
	return Handle(h.Handler, h.create, http.StatusOK, func() *CreateRequest[P] { return &CreateRequest[P]{} })
}

// List handles GET /all.
func (h *ResourceHandler[P, S, V]) List() echo.HandlerFunc {
	return Handle(h.Handler, h.list, http.StatusOK, func() *ListRequest { return &ListRequest{} })
}

// ListByParent handles GET /list/:parentId and GET /:parentId.
func (h *ResourceHandler[P, S, V]) ListByParent() echo.HandlerFunc {
	return Handle(h.Handler, h.listByParent, http.StatusOK, func() *ParentRequest { return &ParentRequest{} })
}

// Update handles PUT /edit/:id and returns the record as read back.
func (h *ResourceHandler[P, S, V]) Update() echo.HandlerFunc {
	return Handle(h.Handler, h.update, http.StatusOK, func() *UpdateRequest[P] { return &UpdateRequest[P]{} })
}

// Delete handles DELETE /delete/:id with an empty 200 response.
func (h *ResourceHandler[P, S, V]) Delete() echo.HandlerFunc {
	return HandleNoContent(h.Handler, h.delete, http.StatusOK, func() *IDRequest { return &IDRequest{} })
}
