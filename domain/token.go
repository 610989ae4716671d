package domain

import "time"

// TokenClaims is the decoded payload of an access token. The shape is a
// contract with the issuer: {exp: unix-seconds, user_id: integer, role?: string}.
// Claims are recomputed from the raw token on demand and never stored.
type TokenClaims struct {
	ExpiresAt int64  `json:"exp"`
	UserID    int64  `json:"user_id"`
	Role      string `json:"role,omitempty"`
}

// Expired reports whether the token's expiry equals or precedes now.
func (c TokenClaims) Expired(now time.Time) bool {
	return c.ExpiresAt <= now.Unix()
}
