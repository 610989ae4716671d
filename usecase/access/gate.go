// Package access derives view-protection decisions from a session
// snapshot. Everything here is pure: the caller performs the actual
// redirect, the gate only signals that one is required.
package access

import "github.com/fastygo/storefront/domain"

// Well-known paths used by gate decisions and post-login routing.
const (
	LoginPath           = "/login"
	HomePath            = "/"
	SellerDashboardPath = "/seller/dashboard"
	AdminDashboardPath  = "/admin/dashboard"
)

// Decision is the outcome of a guard check.
type Decision struct {
	// Allowed is true when the caller may render the protected view.
	Allowed bool
	// RedirectTo is the path to bounce to when not allowed.
	RedirectTo string
	// ReturnTo carries the attempted location so a successful login can
	// land the user back where they started. Set only when the redirect
	// targets the login entry point.
	ReturnTo string
}

// HasRole reports whether the session's user holds one of the allowed
// roles. A session without a user never matches.
func HasRole(s domain.Session, allowed ...domain.Role) bool {
	if s.User == nil {
		return false
	}
	for _, role := range allowed {
		if s.User.Role == role {
			return true
		}
	}
	return false
}

// Check guards a protected view. Unauthenticated sessions are sent to the
// login entry point with the attempted location remembered; authenticated
// sessions lacking the required role are sent to their own home path.
// With no roles listed, any authenticated session passes.
func Check(s domain.Session, location string, allowed ...domain.Role) Decision {
	if !s.Authenticated || s.User == nil {
		return Decision{RedirectTo: LoginPath, ReturnTo: location}
	}
	if len(allowed) > 0 && !HasRole(s, allowed...) {
		return Decision{RedirectTo: homeFor(s.User.Role)}
	}
	return Decision{Allowed: true}
}

func homeFor(role domain.Role) string {
	switch role {
	case domain.RoleSeller:
		return SellerDashboardPath
	case domain.RoleAdmin:
		return AdminDashboardPath
	default:
		return HomePath
	}
}
