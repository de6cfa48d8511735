package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zeyang/login-system/internal/api/metrics"
	"github.com/zeyang/login-system/internal/core/ports"
)

// RateLimit rejects requests once a caller's IP exceeds the fixed-window
// allowance. A limiter failure is treated as an infrastructure problem, not a
// denial: the request is refused with 503 rather than silently admitted.
func RateLimit(limiter ports.RateLimiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := ClientIP(c)

			allowed, err := limiter.AllowRequest(c.Request().Context(), ip)
			if err != nil {
				log.Error().Err(err).Str("ip", ip).Msg("rate limiter unavailable")
				return echo.NewHTTPError(http.StatusServiceUnavailable, "rate limiter unavailable")
			}
			if !allowed {
				metrics.RateLimitDeniedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests")
			}

			return next(c)
		}
	}
}

// ClientIP returns the first entry of X-Forwarded-For when present, falling
// back to the connection's remote address.
func ClientIP(c echo.Context) string {
	if xff := c.Request().Header.Get("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	return c.RealIP()
}
