package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/iliyamo/storefront/internal/model"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// memUsers is an in-memory ResetStore and UserLoader.
type memUsers struct {
	mu    sync.Mutex
	users map[uint64]*model.User
	loads int
}

func newMemUsers(users ...*model.User) *memUsers {
	m := &memUsers{users: map[uint64]*model.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) copyOf(u *model.User) *model.User {
	c := *u
	return &c
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return m.copyOf(u), nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return m.copyOf(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memUsers) SetResetToken(_ context.Context, userID uint64, token string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (m *memUsers) GetByResetToken(_ context.Context, token string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return m.copyOf(u), nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *memUsers) ConsumeReset(_ context.Context, userID uint64, token, hash string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.ResetToken == nil || *u.ResetToken != token || u.ResetTokenExpiry == nil || now.After(*u.ResetTokenExpiry) {
		return ErrTokenExpiredOrInvalid
	}
	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return nil
}
