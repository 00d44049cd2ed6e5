package auth

import (
	"context"

	"github.com/iliyamo/storefront/internal/model"
)

// Owned is a resource that belongs to exactly one user.
type Owned interface {
	OwnerID() uint64
}

// RequireAuthenticated returns the identity of rc or ErrUnauthenticated.
func RequireAuthenticated(ctx context.Context, rc *RequestContext) (Identity, error) {
	id, ok := rc.Identity(ctx)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// RequireOwnershipOrPermission allows the operation when id owns res or
// holds at least one of required.
func RequireOwnershipOrPermission(res Owned, id Identity, required ...model.Permission) error {
	if res == nil || id.UserID == 0 {
		return ErrPermissionDenied
	}
	if res.OwnerID() == id.UserID {
		return nil
	}
	return RequirePermission(id, required...)
}

// RequirePermission allows the operation when id holds at least one of
// required.  An empty required list denies.
func RequirePermission(id Identity, required ...model.Permission) error {
	if id.UserID == 0 {
		return ErrPermissionDenied
	}
	if !id.Permissions.Intersects(model.NewPermissionSet(required...)) {
		return ErrPermissionDenied
	}
	return nil
}
