package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/storefront/domain"
	"github.com/fastygo/storefront/usecase/access"
)

func TestResolveRedirect(t *testing.T) {
	tests := []struct {
		name  string
		role  domain.Role
		prior string
		want  string
	}{
		{"seller lands on seller dashboard", domain.RoleSeller, "", access.SellerDashboardPath},
		{"admin lands on admin dashboard", domain.RoleAdmin, "", access.AdminDashboardPath},
		{"customer lands home", domain.RoleCustomer, "", access.HomePath},
		{"unknown role lands home", domain.Role("SUPPORT"), "", access.HomePath},
		{"empty role lands home", domain.Role(""), "", access.HomePath},
		{"prior location wins over role default", domain.RoleCustomer, "/cart", "/cart"},
		{"prior location wins even for seller", domain.RoleSeller, "/orders/42", "/orders/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, access.ResolveRedirect(tt.role, tt.prior))
		})
	}
}
