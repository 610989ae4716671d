package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/internal/token"
	"github.com/fastygo/storefront/usecase"
	"github.com/fastygo/storefront/usecase/access"
	"github.com/fastygo/storefront/usecase/session"
)

// memoryMirror is an in-memory stand-in for the persisted session mirror.
type memoryMirror struct {
	mu      sync.Mutex
	saved   *domain.Session
	saves   int
	deletes int
	saveErr error
}

func (m *memoryMirror) Load(ctx context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, domain.ErrSessionNotFound
	}
	copied := *m.saved
	return &copied, nil
}

func (m *memoryMirror) Save(ctx context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	copied := *s
	m.saved = &copied
	m.saves++
	return nil
}

func (m *memoryMirror) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = nil
	m.deletes++
	return nil
}

func (m *memoryMirror) record() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

func seller() domain.User {
	return domain.User{
		ID:    11,
		Email: "seller@example.com",
		Name:  "Sana",
		Role:  domain.RoleSeller,
	}
}

func mintToken(t *testing.T, exp time.Time) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp":     exp.Unix(),
		"user_id": 11,
		"role":    "SELLER",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestStore_InvariantHoldsAcrossTransitions(t *testing.T) {
	ctx := context.Background()
	store := session.New(&memoryMirror{}, nil, nil, nil)

	steps := []struct {
		name string
		run  func()
	}{
		{"login", func() { store.Login(ctx, seller(), "access-1", "refresh-1") }},
		{"set tokens", func() { store.SetTokens(ctx, "access-2", "") }},
		{"update user", func() {
			name := "Renamed"
			store.UpdateUser(ctx, domain.UserPatch{Name: &name})
		}},
		{"logout", func() { store.Logout(ctx) }},
		{"set tokens logged out", func() { store.SetTokens(ctx, "orphan-access", "") }},
		{"second logout", func() { store.Logout(ctx) }},
	}

	for _, step := range steps {
		step.run()
		snap := store.Snapshot()
		assert.Equal(t, snap.User != nil && snap.AccessToken != "", snap.Authenticated,
			"invariant violated after %q", step.name)
	}
}

func TestStore_LoginPersistsWriteThrough(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{}
	store := session.New(mirror, nil, nil, nil)

	store.Login(ctx, seller(), "access-1", "refresh-1")

	snap := store.Snapshot()
	require.NotNil(t, snap.User)
	assert.Equal(t, int64(11), snap.User.ID)
	assert.True(t, snap.Authenticated)

	saved := mirror.record()
	require.NotNil(t, saved)
	assert.Equal(t, "access-1", saved.AccessToken)
	assert.Equal(t, "refresh-1", saved.RefreshToken)
	assert.True(t, saved.Authenticated)
}

func TestStore_LogoutIsIdempotentAndEmitsCartClear(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{}
	events := usecase.NewEmitter(nil)

	var clears int
	events.Subscribe(usecase.EventLoggedOut, "cart", func(ctx context.Context) error {
		clears++
		return nil
	})

	store := session.New(mirror, nil, events, nil)
	store.Login(ctx, seller(), "access-1", "refresh-1")

	store.Logout(ctx)

	assert.Equal(t, 1, clears, "one logout emits exactly one cart-clear")
	assert.False(t, store.IsAuthenticated())
	assert.Nil(t, mirror.record(), "persisted record must be removed, not blanked")

	snap := store.Snapshot()
	assert.True(t, snap.Empty())

	// A second logout yields the same empty state and never errors.
	store.Logout(ctx)
	assert.True(t, store.Snapshot().Empty())
}

func TestStore_SetTokensRefreshRetention(t *testing.T) {
	ctx := context.Background()
	store := session.New(&memoryMirror{}, nil, nil, nil)
	store.Login(ctx, seller(), "access-1", "refresh-1")

	store.SetTokens(ctx, "access-2", "")
	snap := store.Snapshot()
	assert.Equal(t, "access-2", snap.AccessToken)
	assert.Equal(t, "refresh-1", snap.RefreshToken, "empty refresh must retain the existing one")

	store.SetTokens(ctx, "access-3", "refresh-2")
	snap = store.Snapshot()
	assert.Equal(t, "access-3", snap.AccessToken)
	assert.Equal(t, "refresh-2", snap.RefreshToken, "explicit refresh always wins")

	require.NotNil(t, snap.User)
	assert.True(t, snap.Authenticated, "set-tokens never flips an authenticated session")
}

func TestStore_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("merges only supplied fields", func(t *testing.T) {
		store := session.New(&memoryMirror{}, nil, nil, nil)
		store.Login(ctx, seller(), "access-1", "")

		phone := "+15550100"
		store.UpdateUser(ctx, domain.UserPatch{Phone: &phone})

		snap := store.Snapshot()
		require.NotNil(t, snap.User)
		assert.Equal(t, "+15550100", snap.User.Phone)
		assert.Equal(t, "seller@example.com", snap.User.Email, "untouched fields preserved")
		assert.Equal(t, domain.RoleSeller, snap.User.Role)
	})

	t.Run("no-op without a user", func(t *testing.T) {
		mirror := &memoryMirror{}
		store := session.New(mirror, nil, nil, nil)

		name := "Nobody"
		store.UpdateUser(ctx, domain.UserPatch{Name: &name})

		assert.True(t, store.Snapshot().Empty())
		assert.Nil(t, mirror.record(), "a no-op must not write the mirror")
	})
}

func TestStore_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes flag from field presence", func(t *testing.T) {
		user := seller()
		mirror := &memoryMirror{saved: &domain.Session{
			User:        &user,
			AccessToken: "access-1",
			// stale persisted flag, must be ignored
			Authenticated: false,
		}}

		store := session.New(mirror, nil, nil, nil)
		require.NoError(t, store.Restore(ctx))
		assert.True(t, store.IsAuthenticated())
	})

	t.Run("missing record leaves empty session", func(t *testing.T) {
		store := session.New(&memoryMirror{}, nil, nil, nil)
		require.NoError(t, store.Restore(ctx))
		assert.False(t, store.IsAuthenticated())
		assert.True(t, store.Snapshot().Empty())
	})
}

func TestStore_Claims(t *testing.T) {
	ctx := context.Background()
	store := session.New(&memoryMirror{}, token.NewCodec(), nil, nil)

	assert.Nil(t, store.Claims(), "no token, no claims")

	store.Login(ctx, seller(), mintToken(t, time.Now().Add(time.Hour)), "")
	claims := store.Claims()
	require.NotNil(t, claims)
	assert.Equal(t, int64(11), claims.UserID)
	assert.Equal(t, "SELLER", claims.Role)

	store.SetTokens(ctx, "not-a-token", "")
	assert.Nil(t, store.Claims(), "malformed token reads as not authenticated, not as a failure")
}

func TestStore_MirrorWriteFailureKeepsStateAuthoritative(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{saveErr: errors.New("disk full")}
	store := session.New(mirror, nil, nil, nil)

	store.Login(ctx, seller(), "access-1", "")
	assert.True(t, store.IsAuthenticated(), "in-memory state survives a mirror write failure")
}

func TestLoginLogoutEndToEnd(t *testing.T) {
	ctx := context.Background()
	mirror := &memoryMirror{}
	events := usecase.NewEmitter(nil)

	var clears int
	events.Subscribe(usecase.EventLoggedOut, "cart", func(ctx context.Context) error {
		clears++
		return nil
	})

	store := session.New(mirror, nil, events, nil)
	store.Login(ctx, seller(), mintToken(t, time.Now().Add(time.Hour)), "refresh-1")

	snap := store.Snapshot()
	require.NotNil(t, snap.User)
	dest := access.ResolveRedirect(snap.User.Role, "")
	assert.Equal(t, access.SellerDashboardPath, dest)

	store.Logout(ctx)

	snap = store.Snapshot()
	assert.Nil(t, snap.User)
	assert.Empty(t, snap.AccessToken)
	assert.Empty(t, snap.RefreshToken)
	assert.False(t, snap.Authenticated)
	assert.Nil(t, mirror.record())
	assert.Equal(t, 1, clears)
}
