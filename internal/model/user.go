package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. Permissions is read from a MySQL SET column; the
// reset fields are NULL unless a password reset is pending.
//
// Fields:
//  ID               – primary key identifier of the user.
//  Email            – unique, lower-cased email address.
//  Name             – display name.
//  PasswordHash     – bcrypt hashed password, never serialised.
//  Permissions      – capabilities granted to the user.
//  ResetToken       – hex reset token while a reset is pending.
//  ResetTokenExpiry – absolute expiry of ResetToken.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type User struct {
	ID               uint64        `json:"id"`          // users.id
	Email            string        `json:"email"`       // users.email
	Name             string        `json:"name"`        // users.name
	PasswordHash     string        `json:"-"`           // users.password_hash
	Permissions      PermissionSet `json:"permissions"` // users.permissions
	ResetToken       *string       `json:"-"`           // users.reset_token (nullable)
	ResetTokenExpiry *time.Time    `json:"-"`           // users.reset_token_expiry (nullable)
	CreatedAt        time.Time     `json:"createdAt"`   // users.created_at
	UpdatedAt        time.Time     `json:"updatedAt"`   // users.updated_at
}
