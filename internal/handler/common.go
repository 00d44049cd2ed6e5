package handler

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/middleware"
)

// requestTimeout bounds the store work of a single request.
const requestTimeout = 5 * time.Second

// loggerKey is where cmd/server stores the request-scoped logger.
const loggerKey = "logger"

// WithLogger stores logger, tagged with the request id, for writeError.
func WithLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base
			if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}
			c.Set(loggerKey, l)
			return next(c)
		}
	}
}

func logger(c echo.Context) *slog.Logger {
	if l, ok := c.Get(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// scope returns the request context with requestTimeout applied, plus the
// caller's identity.
func scope(c echo.Context) (context.Context, context.CancelFunc, *auth.RequestContext) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	return ctx, cancel, middleware.RequestContext(c)
}

// authenticated rejects anonymous callers before their body is read, so
// they get UNAUTHENTICATED rather than a validation error.
func authenticated(c echo.Context) error {
	_, err := auth.RequireAuthenticated(c.Request().Context(), middleware.RequestContext(c))
	return err
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
