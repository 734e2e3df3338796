package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrschumacher/casting-agency/internal/auth"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

const (
	TestIssuer   = "https://casting-test.eu.auth0.com/"
	TestAudience = "casting"
	TestSubject  = "auth0|casting-director"
)

// KeyPair holds an RSA key pair for testing.
// The private key signs tokens, the public JWK is published by JWKSServer.
type KeyPair struct {
	PrivateKey *rsa.PrivateKey
	Kid        string
}

// GenerateKeyPair creates a new RSA key pair for testing.
func GenerateKeyPair(t *testing.T, kid string) *KeyPair {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("Failed to generate RSA key: %v", err)
	}
	return &KeyPair{PrivateKey: privateKey, Kid: kid}
}

// PublicJWK returns the public half as a JWK carrying kid, alg and use.
func (k *KeyPair) PublicJWK(t *testing.T) jwk.Key {
	t.Helper()
	key, err := jwk.FromRaw(&k.PrivateKey.PublicKey)
	if err != nil {
		t.Fatalf("Failed to build JWK: %v", err)
	}
	_ = key.Set(jwk.KeyIDKey, k.Kid)
	_ = key.Set(jwk.AlgorithmKey, jwa.RS256)
	_ = key.Set(jwk.KeyUsageKey, "sig")
	return key
}

// JWKSServer is a fake identity provider key endpoint.
type JWKSServer struct {
	*httptest.Server

	t        *testing.T
	mu       sync.Mutex
	body     []byte
	status   int
	delay    time.Duration
	requests atomic.Int64
}

// NewJWKSServer publishes the public halves of keys. The server is closed on cleanup.
func NewJWKSServer(t *testing.T, keys ...*KeyPair) *JWKSServer {
	t.Helper()
	s := &JWKSServer{t: t, status: http.StatusOK}
	s.SetKeys(keys...)
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *JWKSServer) serve(w http.ResponseWriter, _ *http.Request) {
	s.requests.Add(1)
	s.mu.Lock()
	status, body, delay := s.status, s.body, s.delay
	s.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// SetKeys replaces the published key set.
func (s *JWKSServer) SetKeys(keys ...*KeyPair) {
	s.t.Helper()
	set := jwk.NewSet()
	for _, k := range keys {
		if err := set.AddKey(k.PublicJWK(s.t)); err != nil {
			s.t.Fatalf("Failed to add key: %v", err)
		}
	}
	body, err := json.Marshal(set)
	if err != nil {
		s.t.Fatalf("Failed to marshal JWKS: %v", err)
	}
	s.mu.Lock()
	s.body = body
	s.mu.Unlock()
}

// SetRawBody publishes body verbatim.
func (s *JWKSServer) SetRawBody(body string) {
	s.mu.Lock()
	s.body = []byte(body)
	s.mu.Unlock()
}

// Fail makes the endpoint answer with status.
func (s *JWKSServer) Fail(status int) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Delay makes every response wait d before answering.
func (s *JWKSServer) Delay(d time.Duration) {
	s.mu.Lock()
	s.delay = d
	s.mu.Unlock()
}

// Requests returns the number of fetches served so far.
func (s *JWKSServer) Requests() int64 {
	return s.requests.Load()
}

// AuthConfig returns the authorization settings matching TokenBuilder defaults.
func (s *JWKSServer) AuthConfig() auth.Config {
	return auth.NewConfig(auth.Settings{
		Issuer:       TestIssuer,
		Audience:     TestAudience,
		Algorithm:    "RS256",
		JWKSURL:      s.URL,
		FetchTimeout: 2 * time.Second,
		HTTPClient:   s.Client(),
	})
}

// TokenBuilder provides a fluent API for building test JWTs.
type TokenBuilder struct {
	t      *testing.T
	key    *KeyPair
	kid    string
	noKid  bool
	method jwt.SigningMethod
	claims jwt.MapClaims
}

// NewTokenBuilder creates a token builder with valid defaults and no permissions claim.
func NewTokenBuilder(t *testing.T, key *KeyPair) *TokenBuilder {
	t.Helper()
	now := time.Now()
	return &TokenBuilder{
		t:      t,
		key:    key,
		kid:    key.Kid,
		method: jwt.SigningMethodRS256,
		claims: jwt.MapClaims{
			"iss": TestIssuer,
			"aud": []string{TestAudience},
			"sub": TestSubject,
			"iat": now.Unix(),
			"exp": now.Add(time.Hour).Unix(),
		},
	}
}

// WithPermissions sets the permissions claim. No arguments yields an empty list.
func (b *TokenBuilder) WithPermissions(perms ...string) *TokenBuilder {
	if perms == nil {
		perms = []string{}
	}
	b.claims["permissions"] = perms
	return b
}

// WithNullPermissions sets the permissions claim to JSON null.
func (b *TokenBuilder) WithNullPermissions() *TokenBuilder {
	b.claims["permissions"] = nil
	return b
}

// WithClaim sets an arbitrary claim.
func (b *TokenBuilder) WithClaim(name string, value any) *TokenBuilder {
	b.claims[name] = value
	return b
}

// WithoutClaim removes a claim.
func (b *TokenBuilder) WithoutClaim(name string) *TokenBuilder {
	delete(b.claims, name)
	return b
}

func (b *TokenBuilder) WithIssuer(iss string) *TokenBuilder {
	b.claims["iss"] = iss
	return b
}

func (b *TokenBuilder) WithAudience(aud ...string) *TokenBuilder {
	b.claims["aud"] = aud
	return b
}

// Expired sets the token to have expired 1 hour ago.
func (b *TokenBuilder) Expired() *TokenBuilder {
	b.claims["exp"] = time.Now().Add(-time.Hour).Unix()
	return b
}

// ExpiresAt sets the expiry claim.
func (b *TokenBuilder) ExpiresAt(exp time.Time) *TokenBuilder {
	b.claims["exp"] = exp.Unix()
	return b
}

// WithKeyID overrides the kid header.
func (b *TokenBuilder) WithKeyID(kid string) *TokenBuilder {
	b.kid = kid
	b.noKid = false
	return b
}

// WithoutKeyID omits the kid header.
func (b *TokenBuilder) WithoutKeyID() *TokenBuilder {
	b.noKid = true
	return b
}

// WithMethod signs with a different RSA signing method.
func (b *TokenBuilder) WithMethod(m jwt.SigningMethod) *TokenBuilder {
	b.method = m
	return b
}

// Build creates and signs the JWT, returning the token string.
func (b *TokenBuilder) Build() string {
	b.t.Helper()

	token := jwt.NewWithClaims(b.method, b.claims)
	if !b.noKid {
		token.Header["kid"] = b.kid
	}

	tokenString, err := token.SignedString(b.key.PrivateKey)
	if err != nil {
		b.t.Fatalf("Failed to sign token: %v", err)
	}
	return tokenString
}

// Bearer returns the Authorization header value for the built token.
func (b *TokenBuilder) Bearer() string {
	return "Bearer " + b.Build()
}
