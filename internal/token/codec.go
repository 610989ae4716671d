// Package token decodes opaque bearer tokens into their claims. Signature
// verification is deliberately absent: the issuer is trusted server-side and
// this check is only a client-side convenience, so an expired token and a
// malformed one both read as "not authenticated".
package token

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/fastygo/storefront/domain"
)

// Codec decodes access tokens. The zero value is ready to use.
type Codec struct {
	parser *jwt.Parser
}

func NewCodec() *Codec {
	return &Codec{parser: jwt.NewParser()}
}

// Decode extracts claims from the raw token without verifying its signature.
// Returns domain.ErrTokenMalformed for anything that is not a well-formed
// token carrying the expected claim shape.
func (c *Codec) Decode(raw string) (*domain.TokenClaims, error) {
	if raw == "" {
		return nil, domain.ErrTokenMalformed
	}

	parser := c.parser
	if parser == nil {
		parser = jwt.NewParser()
	}

	parsed, _, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "malformed token", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.TokenClaims{}

	exp, ok := asInt64(mapClaims["exp"])
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	claims.ExpiresAt = exp

	if userID, ok := asInt64(mapClaims["user_id"]); ok {
		claims.UserID = userID
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = role
	}

	return claims, nil
}

// IsValid reports whether the token decodes and expires strictly after now.
// No clock-skew tolerance is applied; the server enforces expiry on its own.
func (c *Codec) IsValid(raw string, now time.Time) bool {
	claims, err := c.Decode(raw)
	if err != nil {
		return false
	}
	return !claims.Expired(now)
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}
