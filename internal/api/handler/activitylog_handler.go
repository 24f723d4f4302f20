package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userhub/dashboard-api/internal/api/middleware"
	"github.com/userhub/dashboard-api/internal/core/domain"
	"github.com/userhub/dashboard-api/internal/core/ports"
)

type ActivityLogHandler struct {
	logs ports.ActivityLogService
}

func NewActivityLogHandler(logs ports.ActivityLogService) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs}
}

func (h *ActivityLogHandler) List(c echo.Context) error {
	entries, meta, err := h.logs.ListAll(c.Request().Context(), queryMap(c))
	if err != nil {
		return err
	}
	return respondList(c, "Activity logs retrieved successfully", entries, meta)
}

func (h *ActivityLogHandler) Recent(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.NewError(domain.KindBadRequest, "limit must be a positive integer")
		}
		limit = n
	}

	entries, err := h.logs.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Recent activity retrieved successfully", entries)
}

func (h *ActivityLogHandler) ListByType(c echo.Context) error {
	entries, meta, err := h.logs.ListByType(c.Request().Context(), domain.ActivityType(c.Param("type")), queryMap(c))
	if err != nil {
		return err
	}
	return respondList(c, "Activity logs retrieved successfully", entries, meta)
}

func (h *ActivityLogHandler) ListByUser(c echo.Context) error {
	entries, meta, err := h.logs.ListByUser(c.Request().Context(), c.Param("userId"), queryMap(c))
	if err != nil {
		return err
	}
	return respondList(c, "Activity logs retrieved successfully", entries, meta)
}

// MyActivity scopes the list to the authenticated caller regardless of
// any user filter in the query.
func (h *ActivityLogHandler) MyActivity(c echo.Context) error {
	claims, err := middleware.ClaimsFrom(c)
	if err != nil {
		return err
	}
	entries, meta, err := h.logs.ListByUser(c.Request().Context(), claims.UserID, queryMap(c))
	if err != nil {
		return err
	}
	return respondList(c, "Activity logs retrieved successfully", entries, meta)
}

func (h *ActivityLogHandler) Cleanup(c echo.Context) error {
	daysOld := 0
	if raw := c.QueryParam("daysOld"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return domain.NewError(domain.KindBadRequest, "daysOld must be a positive integer")
		}
		daysOld = n
	}

	deleted, err := h.logs.Cleanup(c.Request().Context(), daysOld)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Old activity logs deleted successfully", map[string]int64{"deletedCount": deleted})
}
