package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"memberdesk/internal/errors"
	"memberdesk/internal/model"
	"memberdesk/internal/service"
)

// UserHandler bundles the administrator member-management endpoints.
type UserHandler struct {
	memberService    service.MemberService
	lifecycleService service.LifecycleService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(memberService service.MemberService, lifecycleService service.LifecycleService) *UserHandler {
	return &UserHandler{memberService: memberService, lifecycleService: lifecycleService}
}

// UpdateStatusRequest represents a status change request.
type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required"`
}

// UpdateRoleRequest represents a role change request.
type UpdateRoleRequest struct {
	Role model.Role `json:"role" validate:"required"`
}

// ListUsers godoc
// @Summary List all members
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.memberService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// ListPending godoc
// @Summary List members awaiting approval
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/pending [get]
func (h *UserHandler) ListPending(c echo.Context) error {
	users, err := h.memberService.ListPending(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Get member by id
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.memberService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateStatus godoc
// @Summary Change a member's status
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.lifecycleService.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateRole godoc
// @Summary Change a member's role
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Param request body UpdateRoleRequest true "New role"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.lifecycleService.SetRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete a member
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Member ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.lifecycleService.Remove(c.Request().Context(), c.Param("id")); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "member deleted",
	})
}
