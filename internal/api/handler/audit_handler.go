package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeyang/login-system/internal/core/ports"
)

// AuditHandler exposes read access to the append-only auth log.
type AuditHandler struct {
	audit ports.AuditRepository
}

func NewAuditHandler(audit ports.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// ListByAccount returns an account's auth log entries, most recent first.
//
// @Summary      List auth events for an account
// @Tags         audit
// @Produce      json
// @Param        account_id  query     string  true  "Account id"
// @Success      200  {array}   domain.AuthLog
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/logs [get]
func (h *AuditHandler) ListByAccount(c echo.Context) error {
	accountID := c.QueryParam("account_id")
	if accountID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "account_id is required")
	}

	entries, err := h.audit.FindByAccount(c.Request().Context(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// ListByTimeRange returns entries between two RFC 3339 instants.
//
// @Summary      List auth events in a time range
// @Tags         audit
// @Produce      json
// @Param        start  query     string  true  "RFC 3339 start"
// @Param        end    query     string  true  "RFC 3339 end"
// @Success      200  {array}   domain.AuthLog
// @Failure      400  {object}  map[string]string
// @Router       /api/auth/logs/range [get]
func (h *AuditHandler) ListByTimeRange(c echo.Context) error {
	start, err := time.Parse(time.RFC3339, c.QueryParam("start"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start must be RFC 3339")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("end"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "end must be RFC 3339")
	}
	if end.Before(start) {
		return echo.NewHTTPError(http.StatusBadRequest, "end must not precede start")
	}

	entries, err := h.audit.FindByTimeRange(c.Request().Context(), start, end)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
