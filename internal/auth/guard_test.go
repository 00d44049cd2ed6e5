package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront/internal/model"
)

type ownedBy uint64

func (o ownedBy) OwnerID() uint64 { return uint64(o) }

func TestRequireOwnershipOrPermission_TruthTable(t *testing.T) {
	required := []model.Permission{model.PermissionAdmin, model.PermissionItemDelete}

	for _, owns := range []bool{true, false} {
		for _, hasPerm := range []bool{true, false} {
			t.Run(fmt.Sprintf("owns=%v/perm=%v", owns, hasPerm), func(t *testing.T) {
				id := Identity{UserID: 1, Permissions: model.NewPermissionSet(model.PermissionUser)}
				if hasPerm {
					id.Permissions = model.NewPermissionSet(model.PermissionUser, model.PermissionItemDelete)
				}
				res := ownedBy(2)
				if owns {
					res = ownedBy(1)
				}

				err := RequireOwnershipOrPermission(res, id, required...)
				if owns || hasPerm {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, ErrPermissionDenied)
				}
			})
		}
	}
}

func TestRequireOwnershipOrPermission_NilResourceDenied(t *testing.T) {
	id := Identity{UserID: 1, Permissions: model.NewPermissionSet(model.PermissionAdmin)}
	assert.ErrorIs(t, RequireOwnershipOrPermission(nil, id, model.PermissionAdmin), ErrPermissionDenied)
}

func TestRequirePermission(t *testing.T) {
	admin := Identity{UserID: 1, Permissions: model.NewPermissionSet(model.PermissionAdmin)}
	updater := Identity{UserID: 2, Permissions: model.NewPermissionSet(model.PermissionUser, model.PermissionPermissionUpdate)}
	user := Identity{UserID: 3, Permissions: model.NewPermissionSet(model.PermissionUser)}
	none := Identity{UserID: 4}

	need := []model.Permission{model.PermissionAdmin, model.PermissionPermissionUpdate}
	assert.NoError(t, RequirePermission(admin, need...))
	assert.NoError(t, RequirePermission(updater, need...))
	assert.ErrorIs(t, RequirePermission(user, need...), ErrPermissionDenied)
	assert.ErrorIs(t, RequirePermission(none, need...), ErrPermissionDenied)
	assert.ErrorIs(t, RequirePermission(admin), ErrPermissionDenied)
	assert.ErrorIs(t, RequirePermission(Identity{}, need...), ErrPermissionDenied)
}

func TestRequireAuthenticated(t *testing.T) {
	users := newMemUsers(&model.User{ID: 5, Email: "x@y.z", Permissions: model.NewPermissionSet(model.PermissionUser)})
	ctx := context.Background()

	_, err := RequireAuthenticated(ctx, Anonymous())
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = RequireAuthenticated(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = RequireAuthenticated(ctx, NewRequestContext(99, users, nil))
	assert.ErrorIs(t, err, ErrUnauthenticated, "token for a deleted user")

	id, err := RequireAuthenticated(ctx, NewRequestContext(5, users, nil))
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id.UserID)
	assert.True(t, id.Permissions.Has(model.PermissionUser))
}
