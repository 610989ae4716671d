package access

import "github.com/fastygo/storefront/domain"

// ResolveRedirect computes the destination after a successful login.
//
// A prior location captured by a guard redirect wins unconditionally, so a
// user bounced off a protected page lands back there. Otherwise the role's
// home path is used; unknown roles fall through to the default home. Total
// over every input: this never fails.
func ResolveRedirect(role domain.Role, priorLocation string) string {
	if priorLocation != "" {
		return priorLocation
	}
	return homeFor(role)
}
