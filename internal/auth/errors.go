// Package auth implements the storefront's authentication and
// authorization core: password hashing, session tokens, the password
// reset flow, the per-request identity and the guards that protect
// each operation.
//
// Every failure is one of the sentinel errors below.  Callers compare
// with errors.Is; the HTTP layer maps each one to a stable code so a
// client can tell "wrong password" from "no such account" from
// "expired link".
package auth

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a signed-in user.
	ErrUnauthenticated = errors.New("you must be logged in to do that")

	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid password")

	// ErrTokenInvalid is returned when a session token fails verification.
	ErrTokenInvalid = errors.New("invalid session token")

	// ErrTokenExpiredOrInvalid is returned when a reset token is unknown,
	// already used or past its expiry.
	ErrTokenExpiredOrInvalid = errors.New("this token is either invalid or expired")

	// ErrPermissionDenied is returned by the guards on a denial.
	ErrPermissionDenied = errors.New("you don't have permission to do that")

	// ErrUserNotFound is returned when no user matches an email or id.
	ErrUserNotFound = errors.New("no such user found")

	// ErrPasswordMismatch is returned when password and confirmation differ.
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidPermission is returned when a permission name is unknown.
	ErrInvalidPermission = errors.New("invalid permission")
)
