package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jrschumacher/casting-agency/internal/config"
	"github.com/jrschumacher/casting-agency/internal/httputil"
	"github.com/jrschumacher/casting-agency/internal/svrlib"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthRouter struct {
	*svrlib.Router
	db Pinger
}

// RegisterRoutes registers all health check routes on the given mux
func RegisterRoutes(mux chi.Router, baseRoute string, cfg *config.Config, db Pinger) {
	router := &HealthRouter{Router: svrlib.NewRouter(mux, baseRoute, cfg, nil), db: db}
	router.Public(http.MethodGet, "/healthz", router.HealthzHandler)
	router.Public(http.MethodGet, "/readyz", router.ReadyzHandler)
}

// HealthzHandler responds to /healthz requests for health checks
func (rt *HealthRouter) HealthzHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

// ReadyzHandler answers 200 once the database answers a ping.
func (rt *HealthRouter) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	if err := rt.db.Ping(ctx); err != nil {
		httputil.WriteError(w, http.StatusServiceUnavailable, "check", "database", "error", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ready")
}
