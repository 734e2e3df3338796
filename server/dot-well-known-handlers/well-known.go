package dotwellknown

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/httputil"
	"github.com/jrschumacher/casting-agency/internal/svrlib"
)

const jwksFilename = "jwks.json"

type WellKnownRouter struct {
	*svrlib.Router
}

// RegisterRoutes registers the /.well-known routes on the given mux. The JWKS
// route exists only when a development key set is configured.
func RegisterRoutes(mux chi.Router, baseRoute string, cfg *config.Config) {
	router := &WellKnownRouter{Router: svrlib.NewRouter(mux, baseRoute, cfg, nil)}
	if router.Config.DevJWKS == "" {
		return
	}
	router.Public(http.MethodGet, "/"+jwksFilename, router.JWKSHandler)
}

// JWKSHandler serves the public development key set.
func (rt *WellKnownRouter) JWKSHandler(w http.ResponseWriter, _ *http.Request) {
	if rt.Config.DevJWKS == "" {
		httputil.WriteError(w, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, rt.Config.DevJWKS)
}
