package domain

// Role classifies what a user may access. The string values are shared
// with the token issuer and must not be changed independently.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// Known reports whether the role is one of the enumerated values.
// Unknown roles are still carried verbatim; callers treat them as customers.
func (r Role) Known() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// User represents the identity held by the current session.
// Only the session store constructs or mutates users.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Verified  bool   `json:"is_verified,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// UserPatch is a partial update applied to an existing user. Nil fields
// are left untouched, so "absent" and "set to empty" stay distinguishable.
type UserPatch struct {
	Email     *string `json:"email,omitempty"`
	Name      *string `json:"name,omitempty"`
	Role      *Role   `json:"role,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Verified  *bool   `json:"is_verified,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// Apply merges the patch into a copy of the user and returns it.
func (p UserPatch) Apply(u User) User {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Verified != nil {
		u.Verified = *p.Verified
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	return u
}
