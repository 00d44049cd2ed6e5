package auth

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iliyamo/storefront/internal/model"
)

// UserLoader resolves a user id to the current persisted record.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// Identity is the acting user of a request: the id proven by the session
// token and the permissions read from the store for this request.
type Identity struct {
	UserID      uint64
	Permissions model.PermissionSet
}

// RequestContext carries the identity of one request.  It is built by the
// session middleware and handed explicitly to resolvers and guards.  The
// user record is loaded at most once, on first use.
type RequestContext struct {
	userID uint64
	loader UserLoader
	logger *slog.Logger

	once sync.Once
	user *model.User
}

// NewRequestContext returns a context for userID.  A zero userID or a nil
// loader yields an anonymous context.
func NewRequestContext(userID uint64, loader UserLoader, logger *slog.Logger) *RequestContext {
	if loader == nil {
		userID = 0
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestContext{userID: userID, loader: loader, logger: logger}
}

// Anonymous returns a context without an identity.
func Anonymous() *RequestContext {
	return &RequestContext{logger: slog.Default()}
}

// UserID returns the id carried by the session token, if any.  It does not
// touch the store, so the user may no longer exist.
func (rc *RequestContext) UserID() (uint64, bool) {
	if rc == nil || rc.userID == 0 {
		return 0, false
	}
	return rc.userID, true
}

// User returns the current user record, loading it on first call.  It
// returns nil for anonymous requests and when the lookup fails, which
// happens when the token refers to a deleted user.
func (rc *RequestContext) User(ctx context.Context) *model.User {
	if _, ok := rc.UserID(); !ok {
		return nil
	}
	rc.once.Do(func() {
		u, err := rc.loader.GetByID(ctx, rc.userID)
		if err != nil {
			rc.logger.DebugContext(ctx, "session user not resolved", "user_id", rc.userID, "err", err)
			return
		}
		rc.user = u
	})
	return rc.user
}

// Identity returns the resolved identity, or false when the request is
// anonymous or its user cannot be loaded.
func (rc *RequestContext) Identity(ctx context.Context) (Identity, bool) {
	u := rc.User(ctx)
	if u == nil {
		return Identity{}, false
	}
	perms := u.Permissions
	if perms == nil {
		perms = model.PermissionSet{}
	}
	return Identity{UserID: u.ID, Permissions: perms}, true
}

type requestContextKey struct{}

// WithRequestContext stores rc in ctx.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// FromContext returns the RequestContext stored in ctx, or an anonymous
// one when there is none.
func FromContext(ctx context.Context) *RequestContext {
	if rc, ok := ctx.Value(requestContextKey{}).(*RequestContext); ok && rc != nil {
		return rc
	}
	return Anonymous()
}
