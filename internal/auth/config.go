// Package auth verifies bearer tokens against a remote JSON Web Key Set and
// checks the permissions they grant.
package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
)

const (
	DefaultAlgorithm    = jwa.RS256
	DefaultFetchTimeout = 5 * time.Second
)

// Settings is the mutable input to NewConfig.
type Settings struct {
	Issuer       string
	Audience     string
	Algorithm    string
	JWKSURL      string
	FetchTimeout time.Duration
	// CacheTTL enables key set caching when positive. Zero fetches on every verification.
	CacheTTL   time.Duration
	HTTPClient *http.Client
}

// Config is the immutable authorization configuration shared by the
// resolver and verifier.
type Config struct {
	issuer    string
	audience  string
	algorithm jwa.SignatureAlgorithm
	jwksURL   string
	timeout   time.Duration
	cacheTTL  time.Duration
	client    *http.Client
}

func NewConfig(s Settings) Config {
	c := Config{
		issuer:    s.Issuer,
		audience:  s.Audience,
		algorithm: jwa.SignatureAlgorithm(s.Algorithm),
		jwksURL:   s.JWKSURL,
		timeout:   s.FetchTimeout,
		cacheTTL:  s.CacheTTL,
		client:    s.HTTPClient,
	}
	if c.algorithm == "" {
		c.algorithm = DefaultAlgorithm
	}
	if c.timeout <= 0 {
		c.timeout = DefaultFetchTimeout
	}
	if c.cacheTTL < 0 {
		c.cacheTTL = 0
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	return c
}

func (c Config) Issuer() string                    { return c.issuer }
func (c Config) Audience() string                  { return c.audience }
func (c Config) Algorithm() jwa.SignatureAlgorithm { return c.algorithm }
func (c Config) JWKSURL() string                   { return c.jwksURL }
func (c Config) FetchTimeout() time.Duration       { return c.timeout }
func (c Config) CacheTTL() time.Duration           { return c.cacheTTL }
func (c Config) HTTPClient() *http.Client          { return c.client }

// Validate reports a missing issuer, audience or key set URL. A verifier
// built from an incomplete Config rejects every token.
func (c Config) Validate() error {
	var missing []string
	if c.issuer == "" {
		missing = append(missing, "issuer")
	}
	if c.audience == "" {
		missing = append(missing, "audience")
	}
	if c.jwksURL == "" {
		missing = append(missing, "jwks url")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrIncompleteConfig, missing)
	}
	return nil
}
