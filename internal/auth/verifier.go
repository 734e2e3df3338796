package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrschumacher/casting-agency/internal/jwtutil"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Verifier validates a token's signature and registered claims.
type Verifier struct {
	cfg  Config
	keys KeyResolver
	now  func() time.Time
}

// VerifierOption customises a Verifier.
type VerifierOption func(*Verifier)

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

func NewVerifier(cfg Config, keys KeyResolver, opts ...VerifierOption) *Verifier {
	v := &Verifier{cfg: cfg, keys: keys, now: time.Now}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify resolves the signing key from the token's kid, checks the signature
// with the single allowed algorithm, then validates issuer, audience and expiry.
func (v *Verifier) Verify(ctx context.Context, token string) (*ClaimSet, error) {
	if err := v.cfg.Validate(); err != nil {
		return nil, errInvalidToken(err)
	}

	hdr, err := jwtutil.ParseHeader(token)
	if err != nil {
		return nil, errInvalidToken(fmt.Errorf("%w: %w", ErrTokenUnparseable, err))
	}
	if hdr.KeyID == "" {
		return nil, errMalformedHeader("Authorization malformed.")
	}

	key, err := v.keys.ResolveKey(ctx, hdr.KeyID)
	if err != nil {
		if _, ok := AsError(err); ok {
			return nil, err
		}
		return nil, errInvalidToken(err)
	}

	alg := v.cfg.Algorithm()
	if hdr.Algorithm != alg {
		return nil, errInvalidToken(fmt.Errorf("%w: got %s, want %s", ErrAlgorithmMismatch, hdr.Algorithm, alg))
	}

	payload, err := jwtutil.VerifySignature(token, alg, key)
	if err != nil {
		return nil, errInvalidToken(fmt.Errorf("%w: %w", ErrSignatureInvalid, err))
	}

	// The signature was checked above; only the claims are validated here.
	tok, err := jwt.Parse([]byte(token),
		jwt.WithVerify(false),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(v.now)),
		jwt.WithRequiredClaim(jwt.ExpirationKey),
		jwt.WithIssuer(v.cfg.Issuer()),
		jwt.WithAudience(v.cfg.Audience()),
	)
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims, err := newClaimSet(tok, payload)
	if err != nil {
		return nil, errInvalidToken(err)
	}
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired()):
		return errTokenExpired(err)
	case errors.Is(err, jwt.ErrInvalidIssuer()), errors.Is(err, jwt.ErrInvalidAudience()):
		return errIncorrectClaims(err)
	case jwt.IsValidationError(err):
		return errIncorrectClaims(err)
	default:
		return errInvalidToken(fmt.Errorf("%w: %w", ErrTokenUnparseable, err))
	}
}
