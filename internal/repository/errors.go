// Package repository contains the MySQL data access layer.  Each
// repository wraps a *sql.DB and uses hand-written SQL.  Not-found
// conditions are reported through sentinel values so that higher layers
// can distinguish them from driver failures: user lookups use
// auth.ErrUserNotFound, items and orders use the values below.
package repository

import "errors"

// ErrItemNotFound is returned when no item matches the given id.
// Handlers should translate this into an HTTP 404 response.
var ErrItemNotFound = errors.New("item not found")

// ErrOrderNotFound is returned when no order matches the given id.
// Handlers should translate this into an HTTP 404 response.
var ErrOrderNotFound = errors.New("order not found")
