package middleware

import (
	"net/http"
)

// PermissionGroup builds handlers that each require a single permission on
// top of a shared middleware stack.
type PermissionGroup struct {
	authorizer Authorizer
	base       *Chain
}

// NewPermissionGroup creates a group guarded by authorizer.
func NewPermissionGroup(authorizer Authorizer, middlewares ...func(http.Handler) http.Handler) *PermissionGroup {
	return &PermissionGroup{
		authorizer: authorizer,
		base:       NewChain(middlewares...),
	}
}

// Require wraps handlerFunc so it only runs once permission has been granted.
func (g *PermissionGroup) Require(permission string, handlerFunc http.HandlerFunc) http.Handler {
	return g.base.Append(RequirePermission(g.authorizer, permission)).ThenFunc(handlerFunc)
}

// With returns a sub-group with additional middleware.
func (g *PermissionGroup) With(middlewares ...func(http.Handler) http.Handler) *PermissionGroup {
	return &PermissionGroup{
		authorizer: g.authorizer,
		base:       g.base.Append(middlewares...),
	}
}
