// Package jwtutil wraps the jwx primitives used to inspect, verify and sign
// compact JWS tokens.
package jwtutil

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// PermissionsClaim is the private claim carrying granted permission strings.
const PermissionsClaim = "permissions"

var (
	// ErrInvalidToken is returned when the token is not a compact JWS
	ErrInvalidToken = errors.New("invalid token format")
	// ErrMultipleSignatures is returned for JSON serialized tokens with more than one signature
	ErrMultipleSignatures = errors.New("token must carry exactly one signature")
	// ErrUnexpectedStatus is returned when a key set endpoint answers with a non-200 status
	ErrUnexpectedStatus = errors.New("unexpected status from key set endpoint")
)

// Header is the unverified protected header of a token.
type Header struct {
	KeyID     string
	Algorithm jwa.SignatureAlgorithm
}

// ParseHeader reads the protected header without verifying the signature.
func ParseHeader(tokenString string) (Header, error) {
	msg, err := jws.Parse([]byte(tokenString))
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	sigs := msg.Signatures()
	if len(sigs) != 1 {
		return Header{}, ErrMultipleSignatures
	}
	h := sigs[0].ProtectedHeaders()
	return Header{KeyID: h.KeyID(), Algorithm: h.Algorithm()}, nil
}

// VerifySignature checks the token signature with key and returns the verified payload.
func VerifySignature(tokenString string, alg jwa.SignatureAlgorithm, key jwk.Key) ([]byte, error) {
	return jws.Verify([]byte(tokenString), jws.WithKey(alg, key))
}

// FetchKeySet downloads and parses a JWKS document. Any status other than
// 200 is an error, whatever the body contains.
func FetchKeySet(ctx context.Context, client *http.Client, url string) (jwk.Set, error) {
	set, err := jwk.Fetch(ctx, url, jwk.WithHTTPClient(StatusCheckingClient(client)))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS from %s: %w", url, err)
	}
	return set, nil
}

// StatusCheckingClient returns a copy of client whose transport turns non-200
// responses into ErrUnexpectedStatus. jwk.Fetch and jwk.Cache parse whatever
// body they get, so key set requests go through this client.
func StatusCheckingClient(client *http.Client) *http.Client {
	if client == nil {
		client = http.DefaultClient
	}
	checked := *client
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	checked.Transport = statusTransport{base: base}
	return &checked
}

type statusTransport struct {
	base http.RoundTripper
}

func (t statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	res, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		_ = res.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, res.Status)
	}
	return res, nil
}

// LookupKeys returns every key in set whose "kid" equals kid.
func LookupKeys(set jwk.Set, kid string) []jwk.Key {
	var keys []jwk.Key
	for i := 0; i < set.Len(); i++ {
		key, ok := set.Key(i)
		if !ok {
			continue
		}
		if key.KeyID() == kid {
			keys = append(keys, key)
		}
	}
	return keys
}

// JWTClaims is an unverified view of a token's claims, for diagnostics only.
type JWTClaims struct {
	Iss         string    `json:"iss"`
	Sub         string    `json:"sub"`
	Aud         []string  `json:"aud"`
	Exp         time.Time `json:"exp"`
	Iat         time.Time `json:"iat"`
	Permissions []string  `json:"permissions"`
}

// ParseJWTWithoutVerification extracts claims from a token without verification.
// Never use the result for access decisions.
func ParseJWTWithoutVerification(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseInsecure([]byte(tokenString))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}

	claims := &JWTClaims{
		Iss: token.Issuer(),
		Sub: token.Subject(),
		Aud: token.Audience(),
		Exp: token.Expiration(),
		Iat: token.IssuedAt(),
	}
	if raw, ok := token.Get(PermissionsClaim); ok {
		// Private claims decode as []interface{}; round-trip through JSON to normalise.
		buf, err := json.Marshal(raw)
		if err == nil {
			_ = json.Unmarshal(buf, &claims.Permissions)
		}
	}
	return claims, nil
}

// GenerateRSAKey creates an RSA-2048 private JWK with kid, alg and use set.
func GenerateRSAKey(kid string, alg jwa.SignatureAlgorithm) (jwk.Key, error) {
	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, fmt.Errorf("failed to generate RSA key: %w", err)
	}
	key, err := jwk.FromRaw(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, kid); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.AlgorithmKey, alg); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, err
	}
	return key, nil
}

// TokenParams describes a token to be signed by SignToken.
type TokenParams struct {
	Issuer      string
	Audience    []string
	Subject     string
	Permissions []string
	TTL         time.Duration
}

// SignToken issues a compact JWS signed with key. The key's "kid" is copied
// into the protected header.
func SignToken(key jwk.Key, alg jwa.SignatureAlgorithm, p TokenParams) (string, error) {
	now := time.Now()
	builder := jwt.NewBuilder().
		Issuer(p.Issuer).
		IssuedAt(now).
		Expiration(now.Add(p.TTL))
	if len(p.Audience) > 0 {
		builder = builder.Audience(p.Audience)
	}
	if p.Subject != "" {
		builder = builder.Subject(p.Subject)
	}
	if p.Permissions != nil {
		builder = builder.Claim(PermissionsClaim, p.Permissions)
	}
	tok, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	hdrs := jws.NewHeaders()
	if kid := key.KeyID(); kid != "" {
		if err := hdrs.Set(jws.KeyIDKey, kid); err != nil {
			return "", err
		}
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(alg, key, jws.WithProtectedHeaders(hdrs)))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}
