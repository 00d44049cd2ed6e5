package resolver

import (
	"context"
	"strings"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/model"
	"github.com/iliyamo/storefront/internal/repository"
)

// ItemInput describes a new item.
type ItemInput struct {
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       uint32
}

// Items lists every item.  No sign-in is needed.
func (r *Resolver) Items(ctx context.Context) ([]*model.Item, error) {
	return r.items.List(ctx)
}

// Item returns one item.  No sign-in is needed.
func (r *Resolver) Item(ctx context.Context, id uint64) (*model.Item, error) {
	return r.items.GetByID(ctx, id)
}

// CreateItem lists a new item owned by the caller.
func (r *Resolver) CreateItem(ctx context.Context, rc *auth.RequestContext, in ItemInput) (*model.Item, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	it := &model.Item{
		UserID:      id.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Image:       in.Image,
		LargeImage:  in.LargeImage,
		Price:       in.Price,
	}
	if err := r.items.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// UpdateItem changes the fields set in upd.  Any signed-in user may do it;
// ownership is not checked here.
func (r *Resolver) UpdateItem(ctx context.Context, rc *auth.RequestContext, itemID uint64, upd repository.ItemUpdate) (*model.Item, error) {
	if _, err := auth.RequireAuthenticated(ctx, rc); err != nil {
		return nil, err
	}
	return r.items.Update(ctx, itemID, upd)
}

// DeleteItem removes an item.  The caller must own it or hold ADMIN or
// ITEMDELETE.  The deleted item is returned.
func (r *Resolver) DeleteItem(ctx context.Context, rc *auth.RequestContext, itemID uint64) (*model.Item, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	it, err := r.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnershipOrPermission(it, id, model.PermissionAdmin, model.PermissionItemDelete); err != nil {
		r.denied(ctx, "deleteItem", id)
		return nil, err
	}
	if err := r.items.DeleteByID(ctx, itemID); err != nil {
		return nil, err
	}
	return it, nil
}

// Order returns one order.  The caller must own it or hold ADMIN.
func (r *Resolver) Order(ctx context.Context, rc *auth.RequestContext, orderID uint64) (*model.Order, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	o, err := r.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnershipOrPermission(o, id, model.PermissionAdmin); err != nil {
		r.denied(ctx, "order", id)
		return nil, err
	}
	return o, nil
}

// Orders lists the caller's own orders.
func (r *Resolver) Orders(ctx context.Context, rc *auth.RequestContext) ([]*model.Order, error) {
	id, err := auth.RequireAuthenticated(ctx, rc)
	if err != nil {
		return nil, err
	}
	return r.orders.ListByUser(ctx, id.UserID)
}
