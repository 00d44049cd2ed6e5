package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/storefront/internal/model"
)

// OrderRepo reads orders and their lines.  Orders are written by the
// checkout flow, which lives outside this service; here they are only
// looked up for their owner or an administrator.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// GetByID loads an order with its items.  It returns ErrOrderNotFound if
// the order does not exist.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	const q = `SELECT id, user_id, total, charge, created_at FROM orders WHERE id = ?`
	var o model.Order
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&o.ID, &o.UserID, &o.Total, &o.Charge, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	const qi = `SELECT id, order_id, title, description, image, large_image, price, quantity
	            FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, qi, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byOrder, err := scanOrderItems(rows)
	if err != nil {
		return nil, err
	}
	o.Items = byOrder[o.ID]
	if o.Items == nil {
		o.Items = []model.OrderItem{}
	}
	return &o, nil
}

// ListByUser returns the orders placed by userID, newest first, each with
// its items.  Items for all orders are fetched with a single join.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]*model.Order, error) {
	const q = `SELECT id, user_id, total, charge, created_at
	           FROM orders WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	out := []*model.Order{}
	for rows.Next() {
		o := new(model.Order)
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Charge, &o.CreatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	if len(out) == 0 {
		return out, nil
	}

	const qi = `SELECT oi.id, oi.order_id, oi.title, oi.description, oi.image, oi.large_image, oi.price, oi.quantity
	            FROM order_items oi JOIN orders o ON o.id = oi.order_id
	            WHERE o.user_id = ? ORDER BY oi.id`
	itemRows, err := r.db.QueryContext(ctx, qi, userID)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()
	byOrder, err := scanOrderItems(itemRows)
	if err != nil {
		return nil, err
	}
	for _, o := range out {
		o.Items = byOrder[o.ID]
		if o.Items == nil {
			o.Items = []model.OrderItem{}
		}
	}
	return out, nil
}

func scanOrderItems(rows *sql.Rows) (map[uint64][]model.OrderItem, error) {
	byOrder := map[uint64][]model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
			&it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	return byOrder, rows.Err()
}
