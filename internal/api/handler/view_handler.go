package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/ports"
)

// ViewHandler exposes the per-session listing state of the Users and Events
// screens.
type ViewHandler struct {
	views ports.ViewService
}

func NewViewHandler(views ports.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

type filterRequest struct {
	Criterion string `json:"criterion" validate:"required"`
	Value     string `json:"value"`
}

type pageRequest struct {
	Page int `json:"page" validate:"gte=1"`
}

// Get handles GET /v1/views/:entity.
//
// @Summary      Current listing view
// @Description  Returns the filtered page for the session, loading records on first use.
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path      string  true  "users | events"
// @Success      200     {object}  map[string]any
// @Failure      404     {object}  map[string]string
// @Router       /v1/views/{entity} [get]
func (h *ViewHandler) Get(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	v, err := h.views.View(c.Request().Context(), sess.ID, c.Param("entity"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SetFilter handles PUT /v1/views/:entity/filters. The page resets to 1.
//
// @Summary      Change one filter criterion
// @Tags         views
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path      string         true  "users | events"
// @Param        body    body      filterRequest  true  "Criterion and value; an empty value clears it"
// @Success      200     {object}  map[string]any
// @Failure      400     {object}  map[string]string
// @Router       /v1/views/{entity}/filters [put]
func (h *ViewHandler) SetFilter(c echo.Context) error {
	var req filterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	v, err := h.views.SetFilter(c.Request().Context(), sess.ID, c.Param("entity"), req.Criterion, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// SetPage handles PUT /v1/views/:entity/page.
//
// @Summary      Move to a page
// @Tags         views
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path      string       true  "users | events"
// @Param        body    body      pageRequest  true  "Page number; clamped to the available pages"
// @Success      200     {object}  map[string]any
// @Router       /v1/views/{entity}/page [put]
func (h *ViewHandler) SetPage(c echo.Context) error {
	var req pageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	v, err := h.views.SetPage(c.Request().Context(), sess.ID, c.Param("entity"), req.Page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Refresh handles POST /v1/views/:entity/refresh.
//
// @Summary      Reload records from the Share2care API
// @Tags         views
// @Produce      json
// @Security     BearerAuth
// @Param        entity  path      string  true  "users | events"
// @Success      200     {object}  map[string]any
// @Failure      502     {object}  map[string]string
// @Router       /v1/views/{entity}/refresh [post]
func (h *ViewHandler) Refresh(c echo.Context) error {
	sess, err := currentSession(c)
	if err != nil {
		return err
	}
	v, err := h.views.Refresh(c.Request().Context(), sess.ID, c.Param("entity"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
