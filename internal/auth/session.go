package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DefaultSessionTTL matches the lifetime of the session cookie.
	DefaultSessionTTL = 365 * 24 * time.Hour

	// SessionCookieName is the cookie that carries the session token.
	SessionCookieName = "token"
)

// sessionClaims is the whole payload of a session token.  It carries the
// user id and nothing else about the user: permissions and email are
// always read from the store so changes apply on the next request.
type sessionClaims struct {
	UserID uint64 `json:"userId"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies HS256 session tokens with a
// process-wide secret.
type SessionService struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
}

// NewSessionService builds a SessionService.  The secret must not be
// empty; ttl <= 0 selects DefaultSessionTTL.
func NewSessionService(secret string, ttl time.Duration, clock Clock) (*SessionService, error) {
	if secret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SessionService{secret: []byte(secret), ttl: ttl, clock: clock}, nil
}

// TTL returns how long an issued token stays valid.
func (s *SessionService) TTL() time.Duration { return s.ttl }

// Issue signs a token for userID.
func (s *SessionService) Issue(userID uint64) (string, error) {
	if userID == 0 {
		return "", errors.New("issue session: empty user id")
	}
	now := s.clock.Now()
	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue session: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of raw and returns
// the user id it carries.  Every failure is ErrTokenInvalid.
func (s *SessionService) Verify(raw string) (uint64, error) {
	if raw == "" {
		return 0, ErrTokenInvalid
	}
	var claims sessionClaims
	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !tok.Valid {
		return 0, ErrTokenInvalid
	}
	if claims.UserID == 0 {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}
