// This file defines the item repository.  An Item is a product listed by a
// user; its user_id column is the ownership relation checked before a
// delete.

package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"strings"

	"github.com/iliyamo/storefront/internal/model"
)

const itemColumns = "id, user_id, title, description, image, large_image, price, created_at, updated_at"

// ItemRepo encapsulates all database queries related to items.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo with the provided DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

// ItemUpdate lists the fields of an item that may change.  Nil fields are
// left untouched.
type ItemUpdate struct {
	Title       *string
	Description *string
	Image       *string
	LargeImage  *string
	Price       *uint32
}

func (u ItemUpdate) empty() bool {
	return u.Title == nil && u.Description == nil && u.Image == nil && u.LargeImage == nil && u.Price == nil
}

func scanItem(row rowScanner) (*model.Item, error) {
	var it model.Item
	if err := row.Scan(&it.ID, &it.UserID, &it.Title, &it.Description, &it.Image, &it.LargeImage,
		&it.Price, &it.CreatedAt, &it.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &it, nil
}

// Create inserts a new item.  On success the item's ID field will be
// populated with the auto-generated value and the timestamps are read
// back so that callers receive a fully populated record.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	const qInsert = "INSERT INTO items (user_id, title, description, image, large_image, price) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, it.UserID, it.Title, it.Description, it.Image, it.LargeImage, it.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM items WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, it.ID).Scan(&it.CreatedAt, &it.UpdatedAt)
}

// GetByID fetches an item by its ID regardless of owner.  It returns
// ErrItemNotFound if no row is found.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx, "SELECT "+itemColumns+" FROM items WHERE id = ?", id))
}

// List returns all items, newest first.
func (r *ItemRepo) List(ctx context.Context) ([]*model.Item, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+itemColumns+" FROM items ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies the non-nil fields of upd to item id and returns the
// updated record.  ErrItemNotFound is returned when the item is missing.
func (r *ItemRepo) Update(ctx context.Context, id uint64, upd ItemUpdate) (*model.Item, error) {
	if upd.empty() {
		return r.GetByID(ctx, id)
	}
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Image != nil {
		add("image", *upd.Image)
	}
	if upd.LargeImage != nil {
		add("large_image", *upd.LargeImage)
	}
	if upd.Price != nil {
		add("price", *upd.Price)
	}
	args = append(args, id)

	q := "UPDATE items SET " + strings.Join(sets, ", ") + ", updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// DeleteByID removes an item.  Ownership must have been checked by the
// caller.  It returns ErrItemNotFound when no row was deleted.
func (r *ItemRepo) DeleteByID(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrItemNotFound
	}
	return nil
}
