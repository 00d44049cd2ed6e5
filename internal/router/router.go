package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/handler"
)

// RegisterRoutes registers the unversioned health check.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth registers the session endpoints under /v1/auth and the
// current-user query.  signin and request-reset sit behind limit, the
// Redis token bucket, because they are the endpoints worth brute-forcing.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/signup", a.Signup)
	g.POST("/signin", a.Signin, limit)
	g.POST("/signout", a.Signout)
	g.POST("/request-reset", a.RequestReset, limit)
	g.POST("/reset-password", a.ResetPassword)

	e.GET("/v1/me", a.Me)
}
