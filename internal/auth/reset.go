package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iliyamo/storefront/internal/model"
)

const (
	// ResetTokenBytes is the amount of randomness in a reset token.  The
	// token itself is the hex encoding, twice as long.
	ResetTokenBytes = 20

	// DefaultResetTTL is how long a reset token stays valid.
	DefaultResetTTL = time.Hour
)

// ResetStore persists reset tokens on the user record.
//
// GetByEmail and GetByResetToken return ErrUserNotFound when nothing
// matches.  ConsumeReset must set the password hash and clear both reset
// columns in a single statement, and only while the row still holds
// token with an expiry at or after now; otherwise it returns
// ErrTokenExpiredOrInvalid.
type ResetStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetResetToken(ctx context.Context, userID uint64, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string) (*model.User, error)
	ConsumeReset(ctx context.Context, userID uint64, token, passwordHash string, now time.Time) error
}

// ResetService runs the password reset flow:
//
//	Requested -> TokenIssued -> Consumed | Expired
//
// Generate moves a user to TokenIssued, overwriting any earlier token.
// Expired is not a stored state: Validate simply stops accepting the
// token once the clock passes its absolute expiry.
type ResetService struct {
	store ResetStore
	clock Clock
	ttl   time.Duration
	rand  io.Reader
}

// NewResetService builds a ResetService.  ttl <= 0 selects DefaultResetTTL.
func NewResetService(store ResetStore, clock Clock, ttl time.Duration) *ResetService {
	if clock == nil {
		clock = SystemClock{}
	}
	if ttl <= 0 {
		ttl = DefaultResetTTL
	}
	return &ResetService{store: store, clock: clock, ttl: ttl, rand: rand.Reader}
}

// TTL is how long a freshly generated token stays valid.
func (s *ResetService) TTL() time.Duration { return s.ttl }

// Generate issues a fresh token for the user registered under email and
// stores it with an absolute expiry of now + ttl.  The expiry is kept to
// millisecond precision, the resolution of reset_token_expiry.
func (s *ResetService) Generate(ctx context.Context, email string) (string, time.Time, *model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	token, err := s.newToken()
	if err != nil {
		return "", time.Time{}, nil, err
	}
	expiry := s.clock.Now().Add(s.ttl).Truncate(time.Millisecond)
	if err := s.store.SetResetToken(ctx, u.ID, token, expiry); err != nil {
		return "", time.Time{}, nil, fmt.Errorf("store reset token: %w", err)
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return token, expiry, u, nil
}

// Validate returns the user holding token if it has not expired.  The
// token is valid up to and including its stored expiry instant.
func (s *ResetService) Validate(ctx context.Context, token string) (*model.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenExpiredOrInvalid
	}
	u, err := s.store.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrTokenExpiredOrInvalid
		}
		return nil, err
	}
	if u.ResetToken == nil || *u.ResetToken != token || u.ResetTokenExpiry == nil {
		return nil, ErrTokenExpiredOrInvalid
	}
	if s.clock.Now().After(*u.ResetTokenExpiry) {
		return nil, ErrTokenExpiredOrInvalid
	}
	return u, nil
}

// Consume stores passwordHash for u and clears its reset token in one
// store update.  u must come from Validate.
func (s *ResetService) Consume(ctx context.Context, u *model.User, passwordHash string) error {
	if u == nil || u.ResetToken == nil {
		return ErrTokenExpiredOrInvalid
	}
	if err := s.store.ConsumeReset(ctx, u.ID, *u.ResetToken, passwordHash, s.clock.Now()); err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}

func (s *ResetService) newToken() (string, error) {
	buf := make([]byte, ResetTokenBytes)
	if _, err := io.ReadFull(s.rand, buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
