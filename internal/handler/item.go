package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/repository"
	"github.com/iliyamo/storefront/internal/resolver"
)

// ItemHandler serves the item catalogue.
type ItemHandler struct {
	R *resolver.Resolver
}

func NewItemHandler(r *resolver.Resolver) *ItemHandler { return &ItemHandler{R: r} }

func (h *ItemHandler) List(c echo.Context) error {
	ctx, cancel, _ := scope(c)
	defer cancel()

	items, err := h.R.Items(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid item id")
	}
	ctx, cancel, _ := scope(c)
	defer cancel()

	it, err := h.R.Item(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

func (h *ItemHandler) Create(c echo.Context) error {
	if err := authenticated(c); err != nil {
		return writeError(c, err)
	}
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}
	ctx, cancel, rc := scope(c)
	defer cancel()

	it, err := h.R.CreateItem(ctx, rc, resolver.ItemInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid item id")
	}
	if err := authenticated(c); err != nil {
		return writeError(c, err)
	}
	var req updateItemReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}
	ctx, cancel, rc := scope(c)
	defer cancel()

	it, err := h.R.UpdateItem(ctx, rc, id, repository.ItemUpdate{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		LargeImage:  req.LargeImage,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}

// Delete returns the deleted item.
func (h *ItemHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid item id")
	}
	ctx, cancel, rc := scope(c)
	defer cancel()

	it, err := h.R.DeleteItem(ctx, rc, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, it)
}
