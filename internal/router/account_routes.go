package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/handler"
)

// RegisterAccounts registers user administration and order reads.
func RegisterAccounts(e *echo.Echo, u *handler.UserHandler, o *handler.OrderHandler) {
	g := e.Group("/v1")
	g.GET("/users", u.List)
	g.PUT("/users/:id/permissions", u.UpdatePermissions)
	g.GET("/orders", o.List)
	g.GET("/orders/:id", o.Get)
}
