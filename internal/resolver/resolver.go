// Package resolver implements the storefront operations on top of the
// auth core and the stores.  Every protected operation runs its guard
// before the first store mutation, so a denied call leaves no trace.
package resolver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/mail"
	"github.com/iliyamo/storefront/internal/model"
	"github.com/iliyamo/storefront/internal/repository"
)

// UserStore is the user persistence the resolver needs on top of the
// reset flow.
type UserStore interface {
	auth.UserLoader
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	UpdatePermissions(ctx context.Context, id uint64, perms model.PermissionSet) (*model.User, error)
}

// ItemStore persists items.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id uint64) (*model.Item, error)
	List(ctx context.Context) ([]*model.Item, error)
	Update(ctx context.Context, id uint64, upd repository.ItemUpdate) (*model.Item, error)
	DeleteByID(ctx context.Context, id uint64) error
}

// OrderStore reads orders.
type OrderStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Order, error)
	ListByUser(ctx context.Context, userID uint64) ([]*model.Order, error)
}

// Deps bundles everything a Resolver is built from.
type Deps struct {
	Users    UserStore
	Items    ItemStore
	Orders   OrderStore
	Hasher   *auth.Hasher
	Sessions *auth.SessionService
	Resets   *auth.ResetService
	Mail     mail.Sender

	// FrontendURL is the base of links sent by email.
	FrontendURL string
	Logger      *slog.Logger
}

// Resolver runs the storefront operations.
type Resolver struct {
	users       UserStore
	items       ItemStore
	orders      OrderStore
	hasher      *auth.Hasher
	sessions    *auth.SessionService
	resets      *auth.ResetService
	mail        mail.Sender
	frontendURL string
	log         *slog.Logger
}

// New builds a Resolver from d.
func New(d Deps) *Resolver {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	hasher := d.Hasher
	if hasher == nil {
		hasher = auth.NewHasher(auth.DefaultBcryptCost)
	}
	return &Resolver{
		users:       d.Users,
		items:       d.Items,
		orders:      d.Orders,
		hasher:      hasher,
		sessions:    d.Sessions,
		resets:      d.Resets,
		mail:        d.Mail,
		frontendURL: d.FrontendURL,
		log:         logger,
	}
}

// Session is the result of an operation that signs a user in.  The
// transport layer turns Token into the session cookie.
type Session struct {
	User  *model.User
	Token string
}

func (r *Resolver) session(u *model.User) (*Session, error) {
	token, err := r.sessions.Issue(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: u, Token: token}, nil
}

// Me returns the signed-in user, or nil for an anonymous request.
func (r *Resolver) Me(ctx context.Context, rc *auth.RequestContext) *model.User {
	return rc.User(ctx)
}

// Users lists every user.  It needs ADMIN or PERMISSIONUPDATE.
func (r *Resolver) Users(ctx context.Context, rc *auth.RequestContext) ([]*model.User, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	if err := auth.RequirePermission(id, model.PermissionAdmin, model.PermissionPermissionUpdate); err != nil {
		r.denied(ctx, "users", id)
		return nil, err
	}
	return r.users.List(ctx)
}

// UpdatePermissions replaces the permissions of userID.  It needs ADMIN
// or PERMISSIONUPDATE; unknown names fail with auth.ErrInvalidPermission.
func (r *Resolver) UpdatePermissions(ctx context.Context, rc *auth.RequestContext, userID uint64, names []string) (*model.User, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	if err := auth.RequirePermission(id, model.PermissionAdmin, model.PermissionPermissionUpdate); err != nil {
		r.denied(ctx, "updatePermissions", id)
		return nil, err
	}
	perms, err := model.ParsePermissionSet(names)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", auth.ErrInvalidPermission, err)
	}
	u, err := r.users.UpdatePermissions(ctx, userID, perms)
	if err != nil {
		return nil, err
	}
	r.log.InfoContext(ctx, "permissions updated", "by_user_id", id.UserID, "user_id", userID, "permissions", perms.String())
	return u, nil
}

func (r *Resolver) denied(ctx context.Context, op string, id auth.Identity) {
	r.log.WarnContext(ctx, "permission denied", "op", op, "user_id", id.UserID, "permissions", id.Permissions.String())
}
