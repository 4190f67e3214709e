package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/ports"
)

// CatalogHandler serves the catalog operations that go beyond plain CRUD.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type settingRequest struct {
	Value string `json:"value"`
}

type reviewStatusRequest struct {
	Status domain.ReviewStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

type contactStatusRequest struct {
	Status domain.ContactStatus `json:"status" validate:"required,oneof=new read replied"`
}

type replyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// ListSettings handles GET /v1/settings.
//
// @Summary      List platform settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Setting
// @Router       /v1/settings [get]
func (h *CatalogHandler) ListSettings(c echo.Context) error {
	settings, err := h.service.ListSettings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSetting handles PUT /v1/settings/:key.
//
// @Summary      Update a setting
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key   path      string          true  "Setting key"
// @Param        body  body      settingRequest  true  "New value"
// @Success      200   {object}  domain.Setting
// @Router       /v1/settings/{key} [put]
func (h *CatalogHandler) UpdateSetting(c echo.Context) error {
	var req settingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateSetting(c.Request().Context(), c.Param("key"), req.Value)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// ToggleFormOption handles PATCH /v1/form-options/:id/toggle.
//
// @Summary      Activate or deactivate a form option
// @Tags         form-options
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Form option id"
// @Success      200  {object}  domain.FormOption
// @Router       /v1/form-options/{id}/toggle [patch]
func (h *CatalogHandler) ToggleFormOption(c echo.Context) error {
	opt, err := h.service.ToggleFormOption(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, opt)
}

// UpdateReviewStatus handles PUT /v1/reviews/:id/status.
//
// @Summary      Moderate a review
// @Tags         reviews
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string               true  "Review id"
// @Param        body  body  reviewStatusRequest  true  "New status"
// @Success      204
// @Router       /v1/reviews/{id}/status [put]
func (h *CatalogHandler) UpdateReviewStatus(c echo.Context) error {
	var req reviewStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateReviewStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateContactStatus handles PUT /v1/contacts/:id/status.
//
// @Summary      Mark a contact message
// @Tags         contacts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "Contact id"
// @Param        body  body  contactStatusRequest  true  "New status"
// @Success      204
// @Router       /v1/contacts/{id}/status [put]
func (h *CatalogHandler) UpdateContactStatus(c echo.Context) error {
	var req contactStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateContactStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplyContact handles POST /v1/contacts/:id/reply.
//
// @Summary      Reply to a contact message
// @Tags         contacts
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string        true  "Contact id"
// @Param        body  body  replyRequest  true  "Reply text"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /v1/contacts/{id}/reply [post]
func (h *CatalogHandler) ReplyContact(c echo.Context) error {
	var req replyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.ReplyContact(c.Request().Context(), c.Param("id"), req.Reply); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
