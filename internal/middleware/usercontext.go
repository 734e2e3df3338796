package middleware

import (
	"net/http"

	"github.com/jrschumacher/casting-agency/internal/auth"
)

// GetClaims returns the verified claims stored by RequirePermission.
func GetClaims(r *http.Request) (*auth.ClaimSet, bool) {
	return auth.ClaimsFromContext(r.Context())
}

// Subject returns the caller's "sub" claim or "" when the request carries no
// verified claims.
func Subject(r *http.Request) string {
	claims, ok := GetClaims(r)
	if !ok || claims == nil {
		return ""
	}
	return claims.Subject
}
