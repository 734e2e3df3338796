// Package svrlib provides common server routing utilities
package svrlib

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/middleware"
)

// Router mounts a handler package's routes under BaseRoute.
type Router struct {
	Config    *config.Config
	Mux       chi.Router
	BaseRoute string
	Guard     *middleware.PermissionGroup
}

// NewRouter creates a new Router with the given mux, base route, configuration
// and permission guard. guard may be nil for routes that are not protected.
func NewRouter(mux chi.Router, baseRoute string, cfg *config.Config, guard *middleware.PermissionGroup) *Router {
	return &Router{cfg, mux, baseRoute, guard}
}

// Path returns pattern relative to the base route.
func (r *Router) Path(pattern string) string {
	return r.BaseRoute + pattern
}

// Guarded mounts hf behind permission. It panics when the Router has no Guard.
func (r *Router) Guarded(method, pattern, permission string, hf http.HandlerFunc) {
	if r.Guard == nil {
		panic("svrlib: guarded route " + method + " " + r.Path(pattern) + " registered without a guard")
	}
	r.Mux.Method(method, r.Path(pattern), r.Guard.Require(permission, hf))
}

// Public mounts hf with no permission check.
func (r *Router) Public(method, pattern string, hf http.HandlerFunc) {
	r.Mux.MethodFunc(method, r.Path(pattern), hf)
}
