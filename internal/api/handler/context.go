package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zeyang/login-system/internal/core/domain"
)

// clientInfo builds the request metadata passed into the core. The IP is
// taken from the first X-Forwarded-For entry when present so the real
// caller survives a proxy hop.
func clientInfo(c echo.Context) domain.ClientInfo {
	ip := c.RealIP()
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		ip = strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	return domain.ClientInfo{
		IP:        ip,
		UserAgent: c.Request().UserAgent(),
	}
}

// ctxAccountID extracts the account id injected by the Auth middleware.
// Its absence means the middleware did not run; reject with 401.
func ctxAccountID(c echo.Context) (string, error) {
	id, _ := c.Get("account_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
