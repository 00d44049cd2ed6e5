package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/mail"
	"github.com/iliyamo/storefront/internal/model"
)

// SignupInput is the data needed to open an account.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// Signup creates a user holding {USER} and signs them in.
func (r *Resolver) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
		Permissions:  model.NewPermissionSet(model.PermissionUser),
	}
	if err := r.users.Create(ctx, u); err != nil {
		return nil, err
	}
	r.log.InfoContext(ctx, "user signed up", "user_id", u.ID)
	return r.session(u)
}

// Signin checks email and password.  An unknown email fails with
// auth.ErrUserNotFound and a wrong password with auth.ErrInvalidCredentials.
func (r *Resolver) Signin(ctx context.Context, email, password string) (*Session, error) {
	u, err := r.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			r.log.InfoContext(ctx, "signin failed", "reason", "unknown email")
		}
		return nil, err
	}
	if !r.hasher.Verify(password, u.PasswordHash) {
		r.log.InfoContext(ctx, "signin failed", "reason", "bad password", "user_id", u.ID)
		return nil, auth.ErrInvalidCredentials
	}
	return r.session(u)
}

// RequestReset issues a reset token for email and mails the reset link.
// Once the token is stored the request counts as done: a mail failure
// is logged, not returned.
func (r *Resolver) RequestReset(ctx context.Context, email string) error {
	token, expiry, u, err := r.resets.Generate(ctx, email)
	if err != nil {
		return err
	}
	r.log.InfoContext(ctx, "password reset requested", "user_id", u.ID, "expires_at", expiry)

	if r.mail == nil {
		r.log.WarnContext(ctx, "no mail sender configured; reset link not sent", "user_id", u.ID)
		return nil
	}
	body, err := mail.ResetEmail(r.frontendURL, token, r.resets.TTL())
	if err != nil {
		r.log.ErrorContext(ctx, "render reset email failed", "user_id", u.ID, "err", err)
		return nil
	}
	if err := r.mail.Send(ctx, u.Email, mail.ResetSubject, body); err != nil {
		r.log.ErrorContext(ctx, "send reset email failed", "user_id", u.ID, "err", err)
	}
	return nil
}

// ResetPasswordInput carries the reset token and the new password twice.
type ResetPasswordInput struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}

// ResetPassword sets a new password with a valid reset token, consumes
// the token and signs the user in.
func (r *Resolver) ResetPassword(ctx context.Context, in ResetPasswordInput) (*Session, error) {
	if in.Password != in.ConfirmPassword {
		return nil, auth.ErrPasswordMismatch
	}
	u, err := r.resets.Validate(ctx, in.ResetToken)
	if err != nil {
		return nil, err
	}
	hash, err := r.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	if err := r.resets.Consume(ctx, u, hash); err != nil {
		return nil, err
	}
	r.log.InfoContext(ctx, "password reset", "user_id", u.ID)
	return r.session(u)
}
