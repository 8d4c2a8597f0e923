package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"memberdesk/internal/errors"
	"memberdesk/internal/service"
)

// ProfileHandler serves the logged-in member's own record.
type ProfileHandler struct {
	memberService service.MemberService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(memberService service.MemberService) *ProfileHandler {
	return &ProfileHandler{memberService: memberService}
}

// UpdateProfileRequest represents a settings-view profile update.
type UpdateProfileRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	CountryCode string `json:"countryCode" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required,min=8"`
	Instagram   string `json:"instagram,omitempty"`
	Tiktok      string `json:"tiktok,omitempty"`
	Facebook    string `json:"facebook,omitempty"`
}

// subjectID extracts the authenticated member id from the JWT the
// middleware stored on the context.
func subjectID(c echo.Context) (string, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	id, _ := claims["user_id"].(string)
	return id, id != ""
}

// Me godoc
// @Summary Get the logged-in member
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /me [get]
func (h *ProfileHandler) Me(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	user, err := h.memberService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update the logged-in member's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	id, ok := subjectID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.memberService.UpdateProfile(c.Request().Context(), id, service.ProfileInput{
		FullName:    req.FullName,
		CountryCode: req.CountryCode,
		PhoneNumber: req.PhoneNumber,
		Instagram:   req.Instagram,
		Tiktok:      req.Tiktok,
		Facebook:    req.Facebook,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}
