package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/share2care/admin-console/internal/core/domain"
	"github.com/share2care/admin-console/internal/core/listing"
	"github.com/share2care/admin-console/internal/core/ports"
)

// UserHandler serves volunteer administration.
type UserHandler struct {
	users    ports.UserService
	approval ports.ApprovalService
}

func NewUserHandler(users ports.UserService, approval ports.ApprovalService) *UserHandler {
	return &UserHandler{users: users, approval: approval}
}

type userStatusRequest struct {
	Status domain.UserStatus `json:"status" validate:"required,oneof=active inactive"`
}

type approvalRequest struct {
	Status   domain.ApprovalStatus `json:"approval_status" validate:"required,oneof=approved rejected"`
	Comments string                `json:"admin_comments"`
}

// List handles GET /v1/users.
//
// @Summary      List users
// @Description  Filters by free text (name, email, mobile, location), registration date, status and approval status, then paginates.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        search           query     string  false  "Free-text search"
// @Param        date             query     string  false  "Registration date (YYYY-MM-DD)"
// @Param        status           query     string  false  "active | inactive"
// @Param        approval_status  query     string  false  "pending | approved | rejected"
// @Param        page             query     int     false  "Page number (1-based)"
// @Success      200              {object}  map[string]any
// @Failure      400              {object}  map[string]string
// @Failure      502              {object}  map[string]string
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	q, err := listQuery(c, listing.Users)
	if err != nil {
		return err
	}
	page, err := h.users.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateStatus handles PUT /v1/users/:id/status.
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string             true  "User id"
// @Param        body  body  userStatusRequest  true  "New status"
// @Success      204
// @Failure      422   {object}  map[string]string
// @Router       /v1/users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var req userStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.users.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Decide handles PUT /v1/users/:id/approval.
//
// @Summary      Approve or reject a user
// @Description  Persists the decision, then emails and notifies the user. Email or notification failures are returned as warnings.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "User id"
// @Param        body  body      approvalRequest  true  "Decision; comments are required when rejecting"
// @Success      200   {object}  ports.ApprovalResult
// @Failure      422   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /v1/users/{id}/approval [put]
func (h *UserHandler) Decide(c echo.Context) error {
	var req approvalRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	sess, err := currentSession(c)
	if err != nil {
		return err
	}

	res, err := h.approval.Decide(c.Request().Context(), ports.ApprovalInput{
		UserID:    c.Param("id"),
		Status:    req.Status,
		Comments:  req.Comments,
		DecidedBy: sess.Admin.Email,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /v1/users/:id.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Documents handles GET /v1/users/:id/documents.
//
// @Summary      List a user's documents with download URLs
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   ports.ResolvedDocument
// @Router       /v1/users/{id}/documents [get]
func (h *UserHandler) Documents(c echo.Context) error {
	docs, err := h.users.Documents(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, docs)
}

// History handles GET /v1/users/:id/approvals.
//
// @Summary      Approval decisions recorded for a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {array}   domain.ApprovalRecord
// @Router       /v1/users/{id}/approvals [get]
func (h *UserHandler) History(c echo.Context) error {
	recs, err := h.users.ApprovalHistory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, recs)
}
