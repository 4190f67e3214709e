package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/ports"
)

// ResourceHandler exposes list/get/create/update/delete for one catalog
// collection. Request bodies are validated with the record's validate tags.
type ResourceHandler[T any] struct {
	resource ports.Resource[T]
}

func NewResourceHandler[T any](r ports.Resource[T]) *ResourceHandler[T] {
	return &ResourceHandler[T]{resource: r}
}

// Register mounts the five CRUD routes on g.
func (h *ResourceHandler[T]) Register(g *echo.Group) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[T]) List(c echo.Context) error {
	items, err := h.resource.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T]) Get(c echo.Context) error {
	item, err := h.resource.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T]) Create(c echo.Context) error {
	var req T
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.resource.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ResourceHandler[T]) Update(c echo.Context) error {
	var req T
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.resource.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *ResourceHandler[T]) Delete(c echo.Context) error {
	if err := h.resource.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
