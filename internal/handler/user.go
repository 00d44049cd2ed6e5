package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront/internal/resolver"
)

// UserHandler serves the user administration endpoints.
type UserHandler struct {
	R *resolver.Resolver
}

func NewUserHandler(r *resolver.Resolver) *UserHandler { return &UserHandler{R: r} }

func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel, rc := scope(c)
	defer cancel()

	users, err := h.R.Users(ctx, rc)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdatePermissions replaces the permission set of user :id.
func (h *UserHandler) UpdatePermissions(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badRequest(c, "invalid user id")
	}
	if err := authenticated(c); err != nil {
		return writeError(c, err)
	}
	var req updatePermissionsReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return writeError(c, err)
	}
	ctx, cancel, rc := scope(c)
	defer cancel()

	u, err := h.R.UpdatePermissions(ctx, rc, id, req.Permissions)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
