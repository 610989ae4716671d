package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/usecase/access"
)

func sessionFor(role domain.Role) domain.Session {
	s := domain.Session{
		User:        &domain.User{ID: 1, Role: role},
		AccessToken: "access",
	}
	s.Recompute()
	return s
}

func TestHasRole(t *testing.T) {
	tests := []struct {
		name    string
		session domain.Session
		allowed []domain.Role
		want    bool
	}{
		{
			name:    "no user never matches",
			session: domain.Session{},
			allowed: []domain.Role{domain.RoleCustomer, domain.RoleSeller, domain.RoleAdmin},
			want:    false,
		},
		{
			name:    "role in set",
			session: sessionFor(domain.RoleSeller),
			allowed: []domain.Role{domain.RoleSeller, domain.RoleAdmin},
			want:    true,
		},
		{
			name:    "role not in set",
			session: sessionFor(domain.RoleCustomer),
			allowed: []domain.Role{domain.RoleAdmin},
			want:    false,
		},
		{
			name:    "unknown role only matches itself",
			session: sessionFor(domain.Role("SUPPORT")),
			allowed: []domain.Role{domain.RoleCustomer},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.HasRole(tt.session, tt.allowed...))
		})
	}
}

func TestCheck(t *testing.T) {
	t.Run("unauthenticated redirects to login with return hint", func(t *testing.T) {
		d := access.Check(domain.Session{}, "/cart", domain.RoleCustomer)
		assert.False(t, d.Allowed)
		assert.Equal(t, access.LoginPath, d.RedirectTo)
		assert.Equal(t, "/cart", d.ReturnTo)
	})

	t.Run("wrong role redirects home without return hint", func(t *testing.T) {
		d := access.Check(sessionFor(domain.RoleCustomer), "/admin/users", domain.RoleAdmin)
		assert.False(t, d.Allowed)
		assert.Equal(t, access.HomePath, d.RedirectTo)
		assert.Empty(t, d.ReturnTo)
	})

	t.Run("wrong role lands on own dashboard", func(t *testing.T) {
		d := access.Check(sessionFor(domain.RoleSeller), "/admin/users", domain.RoleAdmin)
		assert.Equal(t, access.SellerDashboardPath, d.RedirectTo)
	})

	t.Run("matching role allowed", func(t *testing.T) {
		d := access.Check(sessionFor(domain.RoleAdmin), "/admin/users", domain.RoleAdmin)
		assert.True(t, d.Allowed)
		assert.Empty(t, d.RedirectTo)
	})

	t.Run("no roles listed admits any authenticated session", func(t *testing.T) {
		d := access.Check(sessionFor(domain.RoleCustomer), "/orders")
		assert.True(t, d.Allowed)
	})
}
