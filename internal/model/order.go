package model

import "time"

// Order records a completed checkout.  It aggregates one or more
// order items, each a snapshot of the item at purchase time, and
// the payment charge reference.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who placed the order.
//  Total     – total amount in cents.
//  Charge    – external payment charge reference.
//  Items     – purchased lines, loaded with the order.
//  CreatedAt – creation timestamp.
type Order struct {
	ID        uint64      `json:"id"`        // orders.id
	UserID    uint64      `json:"userId"`    // orders.user_id
	Total     uint32      `json:"total"`     // orders.total
	Charge    string      `json:"charge"`    // orders.charge
	Items     []OrderItem `json:"items"`     // order_items rows
	CreatedAt time.Time   `json:"createdAt"` // orders.created_at
}

// OwnerID returns the user who placed the order.
func (o *Order) OwnerID() uint64 { return o.UserID }

// OrderItem is a copy of an item as it was when the order was placed.
type OrderItem struct {
	ID          uint64 `json:"id"`          // order_items.id
	OrderID     uint64 `json:"orderId"`     // order_items.order_id
	Title       string `json:"title"`       // order_items.title
	Description string `json:"description"` // order_items.description
	Image       string `json:"image"`       // order_items.image
	LargeImage  string `json:"largeImage"`  // order_items.large_image
	Price       uint32 `json:"price"`       // order_items.price
	Quantity    uint32 `json:"quantity"`    // order_items.quantity
}
