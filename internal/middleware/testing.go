package middleware

import (
	"context"

	"github.com/jrschumacher/casting-agency/internal/auth"
)

// StaticAuthorizer grants exactly the listed permissions without looking at
// the request. It is meant for handler tests that do not exercise tokens.
type StaticAuthorizer struct {
	Subject     string
	Permissions []string
}

// TestAuthorizer returns a StaticAuthorizer for subject with permissions.
func TestAuthorizer(subject string, permissions ...string) *StaticAuthorizer {
	return &StaticAuthorizer{Subject: subject, Permissions: permissions}
}

// Authorize implements Authorizer.
func (a *StaticAuthorizer) Authorize(_ context.Context, _ string, permission string) (*auth.ClaimSet, error) {
	claims := &auth.ClaimSet{
		Subject:     a.Subject,
		Permissions: a.Permissions,
		State:       auth.PermissionsPresent,
	}
	if a.Permissions == nil {
		claims.State = auth.PermissionsAbsent
	}
	if err := auth.CheckPermission(permission, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// AllowAll grants every permission.
func AllowAll(subject string) Authorizer {
	return allowAll(subject)
}

type allowAll string

func (a allowAll) Authorize(_ context.Context, _ string, permission string) (*auth.ClaimSet, error) {
	return &auth.ClaimSet{
		Subject:     string(a),
		Permissions: []string{permission},
		State:       auth.PermissionsPresent,
	}, nil
}

var _ Authorizer = (*StaticAuthorizer)(nil)
var _ Authorizer = allowAll("")
