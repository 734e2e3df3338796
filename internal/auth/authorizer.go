package auth

import (
	"context"
)

// TokenVerifier turns a raw token into a verified claim set.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*ClaimSet, error)
}

// Authorizer runs the full pipeline for one request:
// extract, resolve key, verify, check permission.
type Authorizer struct {
	verifier TokenVerifier
}

func NewAuthorizer(verifier TokenVerifier) *Authorizer {
	return &Authorizer{verifier: verifier}
}

// New wires a Resolver and Verifier from cfg. cfg must name an issuer, an
// audience and a key set URL.
func New(ctx context.Context, cfg Config) (*Authorizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resolver, err := NewResolver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewAuthorizer(NewVerifier(cfg, resolver)), nil
}

// Authorize checks the Authorization header value against permission. Every
// returned error is an *Error.
func (a *Authorizer) Authorize(ctx context.Context, header, permission string) (*ClaimSet, error) {
	token, err := ExtractToken(header)
	if err != nil {
		return nil, err
	}

	claims, err := a.verifier.Verify(ctx, token)
	if err != nil {
		if _, ok := AsError(err); !ok {
			err = errInvalidToken(err)
		}
		return nil, err
	}

	if err := CheckPermission(permission, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
