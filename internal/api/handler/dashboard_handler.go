package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
	now       func() time.Time
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// Summary handles GET /dashboard?gestion=YYYY. The current year is used when
// gestion is omitted.
//
// @Summary      Home dashboard aggregates
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        gestion  query     int  false  "Year"
// @Success      200      {object}  domain.Dashboard
// @Failure      400      {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	year := h.now().Year()
	if q := c.QueryParam("gestion"); q != "" {
		y, err := strconv.Atoi(q)
		if err != nil || y <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid gestion")
		}
		year = y
	}

	d, err := h.dashboard.Summary(c.Request().Context(), year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
