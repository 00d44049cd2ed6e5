package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/handler"
)

// RegisterItems registers the item catalogue.  Reads are public and go
// through cache; every write purges it.  Write handlers reject anonymous
// callers before reading the body and the resolver enforces ownership,
// so anonymous writes always get an UNAUTHENTICATED error body.
func RegisterItems(e *echo.Echo, h *handler.ItemHandler, cache, purge echo.MiddlewareFunc) {
	g := e.Group("/v1/items")
	g.GET("", h.List, cache)
	g.GET("/:id", h.Get, cache)
	g.POST("", h.Create, purge)
	g.PATCH("/:id", h.Update, purge)
	g.DELETE("/:id", h.Delete, purge)
}
