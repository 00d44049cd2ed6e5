package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/resolver"
)

// OrderHandler serves order reads.
type OrderHandler struct {
	R *resolver.Resolver
}

func NewOrderHandler(r *resolver.Resolver) *OrderHandler { return &OrderHandler{R: r} }

func (h *OrderHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid order id")
	}
	ctx, cancel, rc := scope(c)
	defer cancel()

	o, err := h.R.Order(ctx, rc, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

// List returns the caller's own orders.
func (h *OrderHandler) List(c echo.Context) error {
	ctx, cancel, rc := scope(c)
	defer cancel()

	orders, err := h.R.Orders(ctx, rc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}
