package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/auth"
)

// requestContextKey is the echo context key holding *auth.RequestContext.
const requestContextKey = "request_context"

// Session reads the session cookie and attaches an auth.RequestContext to
// the request.  It never rejects a request: a missing or invalid token
// just yields an anonymous context, and the handlers decide what needs a
// signed-in user.
func Session(sessions *auth.SessionService, users auth.UserLoader, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rc := auth.Anonymous()
			if ck, err := c.Cookie(auth.SessionCookieName); err == nil && ck.Value != "" {
				uid, err := sessions.Verify(ck.Value)
				if err != nil {
					logger.DebugContext(c.Request().Context(), "session token rejected", "err", err)
				} else {
					rc = auth.NewRequestContext(uid, users, logger)
				}
			}

			c.Set(requestContextKey, rc)
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithRequestContext(req.Context(), rc)))
			return next(c)
		}
	}
}

// RequestContext returns the context attached by Session, or an anonymous
// one when the middleware did not run.
func RequestContext(c echo.Context) *auth.RequestContext {
	if rc, ok := c.Get(requestContextKey).(*auth.RequestContext); ok && rc != nil {
		return rc
	}
	return auth.FromContext(c.Request().Context())
}
