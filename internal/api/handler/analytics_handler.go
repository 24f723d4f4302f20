package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

func (h *AnalyticsHandler) UserStats(c echo.Context) error {
	stats, err := h.analytics.UserStats(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "User statistics retrieved successfully", stats)
}

func (h *AnalyticsHandler) RoleDistribution(c echo.Context) error {
	counts, err := h.analytics.RoleDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Role distribution retrieved successfully", counts)
}

func (h *AnalyticsHandler) StatusDistribution(c echo.Context) error {
	counts, err := h.analytics.StatusDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Status distribution retrieved successfully", counts)
}

func (h *AnalyticsHandler) RegistrationTrends(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.NewError(domain.KindBadRequest, "days must be a positive integer")
		}
		days = n
	}

	trends, err := h.analytics.RegistrationTrends(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Registration trends retrieved successfully", trends)
}

func (h *AnalyticsHandler) NewUsersThisMonth(c echo.Context) error {
	stats, err := h.analytics.NewUsersThisMonth(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Monthly registrations retrieved successfully", stats)
}

func (h *AnalyticsHandler) RecentUsers(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.NewError(domain.KindBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	users, err := h.analytics.RecentUsers(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recent users retrieved successfully", users)
}

func (h *AnalyticsHandler) DashboardOverview(c echo.Context) error {
	overview, err := h.analytics.DashboardOverview(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Dashboard overview retrieved successfully", overview)
}
