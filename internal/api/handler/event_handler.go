package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

// EventHandler serves event administration.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /v1/events.
//
// @Summary      List events
// @Description  Filters by free text (title, location, contact, category, type), event date, status and featured flag, then paginates.
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Free-text search"
// @Param        date      query     string  false  "Event date (YYYY-MM-DD)"
// @Param        status    query     string  false  "active | inactive | completed | cancelled"
// @Param        featured  query     string  false  "true | false"
// @Param        page      query     int     false  "Page number (1-based)"
// @Success      200       {object}  map[string]any
// @Failure      400       {object}  map[string]string
// @Router       /v1/events [get]
func (h *EventHandler) List(c echo.Context) error {
	q, err := listQuery(c, listing.Events)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /v1/events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  map[string]string
// @Router       /v1/events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	e, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Create handles POST /v1/events.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.Event  true  "Event"
// @Success      201   {object}  domain.Event
// @Failure      422   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Create(c echo.Context) error {
	var req domain.Event
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	created, err := h.service.Create(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /v1/events/:id.
//
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event id"
// @Param        body  body      domain.Event  true  "Event"
// @Success      200   {object}  domain.Event
// @Failure      422   {object}  map[string]string
// @Router       /v1/events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req domain.Event
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/events/:id.
//
// @Summary      Delete an event
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event id"
// @Success      204
// @Router       /v1/events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateStatus handles PUT /v1/events/:id/status.
//
// @Summary      Change an event's status
// @Tags         events
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string              true  "Event id"
// @Param        body  body  eventStatusRequest  true  "New status"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /v1/events/{id}/status [put]
func (h *EventHandler) UpdateStatus(c echo.Context) error {
	var req eventStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetFeatured handles PUT /v1/events/:id/featured.
//
// @Summary      Feature or unfeature an event
// @Tags         events
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string          true  "Event id"
// @Param        body  body  featureRequest  true  "Featured flag"
// @Success      204
// @Router       /v1/events/{id}/featured [put]
func (h *EventHandler) SetFeatured(c echo.Context) error {
	var req featureRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.SetFeatured(c.Request().Context(), c.Param("id"), *req.Featured); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
