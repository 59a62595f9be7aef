// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/activity"
	"github.com/taibuivan/folio/internal/platform/apperr"
	"github.com/taibuivan/folio/internal/platform/sec"
	"github.com/taibuivan/folio/internal/users/auth"
)

// # Fakes

type memoryUsers struct {
	mu      sync.Mutex
	byID    map[string]*auth.User
	touched map[string]time.Time
}

func newMemoryUsers(users ...*auth.User) *memoryUsers {
	store := &memoryUsers{byID: map[string]*auth.User{}, touched: map[string]time.Time{}}
	for _, user := range users {
		store.byID[user.ID] = user
	}
	return store
}

func (store *memoryUsers) FindByID(_ context.Context, id string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if user, ok := store.byID[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, user := range store.byID {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryUsers) List(context.Context) ([]*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	users := []*auth.User{}
	for _, user := range store.byID {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (store *memoryUsers) Count(context.Context) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.byID), nil
}

func (store *memoryUsers) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := *user
	store.byID[user.ID] = &copied
	return nil
}

func (store *memoryUsers) Update(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	copied := *user
	store.byID[user.ID] = &copied
	return nil
}

func (store *memoryUsers) TouchLogin(_ context.Context, userID string, at time.Time) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.touched[userID] = at
	return nil
}

type memoryRevocations struct {
	denied map[string]time.Duration
	err    error
}

func (store *memoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl > 0 {
		store.denied[tokenID] = ttl
	}
	return nil
}

func (store *memoryRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if store.err != nil {
		return false, store.err
	}
	_, ok := store.denied[tokenID]
	return ok, nil
}

type recorder struct{ items []activity.Activity }

func (r *recorder) Record(_ context.Context, item activity.Activity) { r.items = append(r.items, item) }

// # Fixture

type fixture struct {
	service     *auth.Service
	users       *memoryUsers
	revocations *memoryRevocations
	recorder    *recorder
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "folio.test")

	hash, err := sec.HashPassword("s3cret-pass")
	require.NoError(t, err)

	users := newMemoryUsers(
		&auth.User{ID: "u-1", Email: "Admin@Example.com", Name: "Ada", PasswordHash: hash, Role: sec.RoleAdmin, IsActive: true},
		&auth.User{ID: "u-2", Email: "gone@example.com", Name: "Gone", PasswordHash: hash, Role: sec.RoleEditor, IsActive: false},
	)
	revocations := &memoryRevocations{denied: map[string]time.Duration{}}
	rec := &recorder{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		service:     auth.NewService(users, revocations, tokens, rec, logger),
		users:       users,
		revocations: revocations,
		recorder:    rec,
	}
}

// # Tests

/*
TestLogin_Succeeds issues a verifiable token and stamps the login.
*/
func TestLogin_Succeeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.service.Login(ctx, " admin@example.com ", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "u-1", result.User.ID)
	assert.NotNil(t, result.User.LastLoginAt)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Contains(t, f.users.touched, "u-1")

	claims, err := f.service.VerifyToken(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, string(sec.RoleAdmin), claims.Role)

	require.Len(t, f.recorder.items, 1)
	assert.Equal(t, activity.ActionLogin, f.recorder.items[0].Action)
}

/*
TestLogin_Rejects returns the same UNAUTHORIZED error for every bad credential.
*/
func TestLogin_Rejects(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown_email", "nobody@example.com", "s3cret-pass"},
		{"wrong_password", "admin@example.com", "nope"},
		{"deactivated", "gone@example.com", "s3cret-pass"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)

			appErr := apperr.As(err)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid email or password", appErr.Message)
		})
	}
	assert.Empty(t, f.recorder.items)
}

/*
TestLogout_RevokesToken denies the jti for its remaining lifetime.
*/
func TestLogout_RevokesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.service.Login(ctx, "admin@example.com", "s3cret-pass")
	require.NoError(t, err)

	claims, err := f.service.VerifyToken(ctx, result.Token)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, claims))
	require.NoError(t, f.service.Logout(ctx, claims))
	assert.Greater(t, f.revocations.denied[claims.ID], time.Duration(0))

	_, err = f.service.VerifyToken(ctx, result.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)
}

/*
TestVerifyToken_DenylistOutage rejects tokens when the denylist cannot answer.
*/
func TestVerifyToken_DenylistOutage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.service.Login(ctx, "admin@example.com", "s3cret-pass")
	require.NoError(t, err)

	f.revocations.err = errors.New("connection refused")
	_, err = f.service.VerifyToken(ctx, result.Token)
	assert.Error(t, err)
}

/*
TestMe rejects accounts deactivated after sign-in.
*/
func TestMe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.service.Me(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = f.service.Me(ctx, "u-2")
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, err = f.service.Me(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err))
}
