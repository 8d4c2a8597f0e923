package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"memberdesk/internal/errors"
	"memberdesk/internal/service"
)

// DashboardHandler serves dashboard summaries.
type DashboardHandler struct {
	memberService service.MemberService
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(memberService service.MemberService) *DashboardHandler {
	return &DashboardHandler{memberService: memberService}
}

// Stats godoc
// @Summary Dashboard member stats
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.memberService.Stats(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
