package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// PermissionsState records how the permissions claim appeared in the token.
type PermissionsState int

const (
	PermissionsAbsent PermissionsState = iota
	PermissionsNull
	PermissionsPresent
)

// ClaimSet is the verified body of a token. It lives for one request.
type ClaimSet struct {
	Subject     string
	Issuer      string
	Audience    []string
	ExpiresAt   time.Time
	Permissions []string
	State       PermissionsState
}

// HasPermission reports whether permission was granted.
func (c *ClaimSet) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// newClaimSet combines the validated registered claims with the permissions
// claim decoded from the raw payload, keeping absent and null apart.
func newClaimSet(tok jwt.Token, payload []byte) (*ClaimSet, error) {
	cs := &ClaimSet{
		Subject:   tok.Subject(),
		Issuer:    tok.Issuer(),
		Audience:  tok.Audience(),
		ExpiresAt: tok.Expiration(),
	}

	var body struct {
		Permissions json.RawMessage `json:"permissions"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenUnparseable, err)
	}

	switch {
	case body.Permissions == nil:
		cs.State = PermissionsAbsent
	case bytes.Equal(bytes.TrimSpace(body.Permissions), []byte("null")):
		cs.State = PermissionsNull
	default:
		if err := json.Unmarshal(body.Permissions, &cs.Permissions); err != nil {
			return nil, fmt.Errorf("%w: permissions claim: %w", ErrTokenUnparseable, err)
		}
		cs.State = PermissionsPresent
	}
	return cs, nil
}

type claimsKey struct{}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *ClaimSet) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claim set stored by WithClaims.
func ClaimsFromContext(ctx context.Context) (*ClaimSet, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*ClaimSet)
	return claims, ok
}
