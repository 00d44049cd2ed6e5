package model

import "time"

// Item represents a product listed in the storefront by a user.
// This struct corresponds to a row in the `items` table.  Price is
// kept in cents to avoid floating point rounding.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who listed the item.
//  Title       – short title shown in listings.
//  Description – long description.
//  Image       – URL of the listing image.
//  LargeImage  – URL of the full size image.
//  Price       – price in cents.
//  CreatedAt   – timestamp when the item was created.
//  UpdatedAt   – timestamp of last update.
type Item struct {
	ID          uint64    `json:"id"`          // items.id
	UserID      uint64    `json:"userId"`      // items.user_id
	Title       string    `json:"title"`       // items.title
	Description string    `json:"description"` // items.description
	Image       string    `json:"image"`       // items.image
	LargeImage  string    `json:"largeImage"`  // items.large_image
	Price       uint32    `json:"price"`       // items.price
	CreatedAt   time.Time `json:"createdAt"`   // items.created_at
	UpdatedAt   time.Time `json:"updatedAt"`   // items.updated_at
}

// OwnerID returns the user who listed the item.
func (i *Item) OwnerID() uint64 { return i.UserID }
