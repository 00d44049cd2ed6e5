package resolver

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/storefront/internal/auth"
	"github.com/iliyamo/storefront/internal/model"
	"github.com/iliyamo/storefront/internal/repository"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// memUserStore implements UserStore and auth.ResetStore.
type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
	writes int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[uint64]*model.User{}}
}

func clone(u *model.User) *model.User {
	c := *u
	return &c
}

func (m *memUserStore) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return auth.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = clone(u)
	m.writes++
	return nil
}

func (m *memUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return clone(u), nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range m.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserStore) List(_ context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, clone(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUserStore) UpdatePermissions(_ context.Context, id uint64, perms model.PermissionSet) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	u.Permissions = perms
	m.writes++
	return clone(u), nil
}

func (m *memUserStore) SetResetToken(_ context.Context, userID uint64, token string, expiry time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return auth.ErrUserNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	m.writes++
	return nil
}

func (m *memUserStore) GetByResetToken(_ context.Context, token string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return clone(u), nil
		}
	}
	return nil, auth.ErrUserNotFound
}

func (m *memUserStore) ConsumeReset(_ context.Context, userID uint64, token, hash string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || u.ResetToken == nil || *u.ResetToken != token || u.ResetTokenExpiry == nil || now.After(*u.ResetTokenExpiry) {
		return auth.ErrTokenExpiredOrInvalid
	}
	u.PasswordHash = hash
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	m.writes++
	return nil
}

type memItemStore struct {
	mu      sync.Mutex
	nextID  uint64
	items   map[uint64]*model.Item
	deletes int
}

func newMemItemStore() *memItemStore {
	return &memItemStore{items: map[uint64]*model.Item{}}
}

func (m *memItemStore) Create(_ context.Context, it *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	it.ID = m.nextID
	c := *it
	m.items[it.ID] = &c
	return nil
}

func (m *memItemStore) GetByID(_ context.Context, id uint64) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	c := *it
	return &c, nil
}

func (m *memItemStore) List(_ context.Context) ([]*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Item, 0, len(m.items))
	for _, it := range m.items {
		c := *it
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItemStore) Update(_ context.Context, id uint64, upd repository.ItemUpdate) (*model.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	if upd.Title != nil {
		it.Title = *upd.Title
	}
	if upd.Description != nil {
		it.Description = *upd.Description
	}
	if upd.Price != nil {
		it.Price = *upd.Price
	}
	c := *it
	return &c, nil
}

func (m *memItemStore) DeleteByID(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(m.items, id)
	m.deletes++
	return nil
}

type memOrderStore struct {
	orders map[uint64]*model.Order
}

func (m *memOrderStore) GetByID(_ context.Context, id uint64) (*model.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return o, nil
}

func (m *memOrderStore) ListByUser(_ context.Context, userID uint64) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type sentMail struct {
	To, Subject, Body string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (s *recordingSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type fixture struct {
	r      *Resolver
	users  *memUserStore
	items  *memItemStore
	orders *memOrderStore
	mail   *recordingSender
	clock  *fixedClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fixedClock{now: epoch}
	users := newMemUserStore()
	sessions, err := auth.NewSessionService("test-secret", 0, clock)
	require.NoError(t, err)

	f := &fixture{
		users:  users,
		items:  newMemItemStore(),
		orders: &memOrderStore{orders: map[uint64]*model.Order{}},
		mail:   &recordingSender{},
		clock:  clock,
	}
	f.r = New(Deps{
		Users:       users,
		Items:       f.items,
		Orders:      f.orders,
		Hasher:      auth.NewHasher(bcrypt.MinCost),
		Sessions:    sessions,
		Resets:      auth.NewResetService(users, clock, time.Hour),
		Mail:        f.mail,
		FrontendURL: "http://localhost:7777",
	})
	return f
}

// signedIn returns the request context a request carrying s's cookie
// would get.
func (f *fixture) signedIn(t *testing.T, s *Session) *auth.RequestContext {
	t.Helper()
	uid, err := f.r.sessions.Verify(s.Token)
	require.NoError(t, err)
	return auth.NewRequestContext(uid, f.users, nil)
}

// addUser stores a user with the given permissions and returns its
// request context.
func (f *fixture) addUser(t *testing.T, email string, perms ...model.Permission) (*model.User, *auth.RequestContext) {
	t.Helper()
	u := &model.User{Email: email, Name: email, PasswordHash: "x", Permissions: model.NewPermissionSet(perms...)}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u, auth.NewRequestContext(u.ID, f.users, nil)
}

var errBoom = errors.New("boom")
