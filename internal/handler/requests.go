package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/menu-service/internal/model"
	"github.com/deppfellow/menu-service/internal/validation"
)

// Path parameter names used by the resource routes.
const (
	ParamID       = "id"
	ParamParentID = "parentId"
)

// ListRequest carries nothing; it exists so list endpoints share the pipeline.
type ListRequest struct{}

func (r *ListRequest) Bind(echo.Context) error { return nil }

func (r *ListRequest) Validate() error { return nil }

// ParentRequest binds the integer parent id from the path.
type ParentRequest struct {
	ParentID int64
}

func (r *ParentRequest) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).MustInt64(ParamParentID, &r.ParentID).BindError()
}

func (r *ParentRequest) Validate() error { return nil }

// IDRequest binds the integer record id from the path.
type IDRequest struct {
	ID int64
}

func (r *IDRequest) Bind(c echo.Context) error {
	return echo.PathParamsBinder(c).MustInt64(ParamID, &r.ID).BindError()
}

func (r *IDRequest) Validate() error { return nil }

// CreateRequest binds a create payload from the JSON body.
// Every payload key must be present; BindBody rejects partial bodies.
type CreateRequest[P model.Payload] struct {
	Payload P
}

func (r *CreateRequest[P]) Bind(c echo.Context) error {
	return validation.BindBody(c, &r.Payload)
}

func (r *CreateRequest[P]) Validate() error { return nil }

// UpdateRequest binds the record id from the path and the replacement payload from the body.
type UpdateRequest[P model.Payload] struct {
	ID      int64
	Payload P
}

func (r *UpdateRequest[P]) Bind(c echo.Context) error {
	if err := echo.PathParamsBinder(c).MustInt64(ParamID, &r.ID).BindError(); err != nil {
		return err
	}
	return validation.BindBody(c, &r.Payload)
}

func (r *UpdateRequest[P]) Validate() error { return nil }
