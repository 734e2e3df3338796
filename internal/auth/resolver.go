package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jrschumacher/casting-agency/internal/jwtutil"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/jrschumacher/casting-agency/internal/metrics"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// KeyResolver finds the public key a token was signed with.
type KeyResolver interface {
	ResolveKey(ctx context.Context, kid string) (jwk.Key, error)
}

// Resolver fetches the configured JWKS and selects the key matching a kid.
// Without a cache TTL every call performs a fresh fetch bounded by the
// configured timeout.
type Resolver struct {
	cfg   Config
	cache *jwk.Cache
}

// NewResolver builds a resolver. ctx bounds the lifetime of the background
// refresher used when caching is enabled.
func NewResolver(ctx context.Context, cfg Config) (*Resolver, error) {
	r := &Resolver{cfg: cfg}
	if cfg.CacheTTL() > 0 {
		r.cache = jwk.NewCache(ctx)
		err := r.cache.Register(cfg.JWKSURL(),
			jwk.WithRefreshInterval(cfg.CacheTTL()),
			jwk.WithHTTPClient(jwtutil.StatusCheckingClient(cfg.HTTPClient())),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to register JWKS cache: %w", err)
		}
		logger.Info("JWKS cache enabled", "url", cfg.JWKSURL(), "ttl", cfg.CacheTTL())
	}
	return r, nil
}

// KeySet returns the current key set.
func (r *Resolver) KeySet(ctx context.Context) (jwk.Set, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.FetchTimeout())
	defer cancel()

	start := time.Now()
	var (
		set jwk.Set
		err error
	)
	if r.cache != nil {
		set, err = r.cache.Get(ctx, r.cfg.JWKSURL())
	} else {
		set, err = jwtutil.FetchKeySet(ctx, r.cfg.HTTPClient(), r.cfg.JWKSURL())
	}
	if err != nil {
		metrics.JWKSFetches.WithLabelValues("error").Inc()
		logger.Warn("JWKS unavailable", "url", r.cfg.JWKSURL(), "error", err, "elapsed", time.Since(start))
		return nil, fmt.Errorf("%w: %w", ErrKeySetUnavailable, err)
	}
	metrics.JWKSFetches.WithLabelValues("ok").Inc()
	return set, nil
}

// ResolveKey returns the single key whose kid matches. Zero or several
// matches are both treated as an invalid token.
func (r *Resolver) ResolveKey(ctx context.Context, kid string) (jwk.Key, error) {
	set, err := r.KeySet(ctx)
	if err != nil {
		return nil, errInvalidToken(err)
	}

	keys := jwtutil.LookupKeys(set, kid)
	switch len(keys) {
	case 0:
		return nil, errInvalidToken(fmt.Errorf("%w: %q", ErrKeyNotFound, kid))
	case 1:
		return keys[0], nil
	default:
		return nil, errInvalidToken(fmt.Errorf("%w: %q appears %d times", ErrDuplicateKeyID, kid, len(keys)))
	}
}
