package auth

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an authorization failure.
type Kind int

const (
	KindMissingHeader Kind = iota + 1
	KindMalformedHeader
	KindInvalidToken
	KindTokenExpired
	KindInvalidClaims
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindMissingHeader:
		return "MissingHeader"
	case KindMalformedHeader:
		return "MalformedHeader"
	case KindInvalidToken:
		return "InvalidToken"
	case KindTokenExpired:
		return "TokenExpired"
	case KindInvalidClaims:
		return "InvalidClaims"
	case KindForbidden:
		return "Forbidden"
	default:
		return "Unknown"
	}
}

// Causes tagged onto InvalidToken failures. They never change the HTTP mapping.
var (
	ErrKeyNotFound       = errors.New("no key matches the token key id")
	ErrDuplicateKeyID    = errors.New("multiple keys share the token key id")
	ErrKeySetUnavailable = errors.New("key set unavailable")
	ErrTokenUnparseable  = errors.New("token could not be parsed")
	ErrSignatureInvalid  = errors.New("token signature invalid")
	ErrAlgorithmMismatch = errors.New("token algorithm not allowed")
	ErrIncompleteConfig  = errors.New("authorization config incomplete")
)

// Error is an authorization failure. Code and Description form the response
// body and Status is the HTTP status to answer with.
type Error struct {
	Kind        Kind
	Code        string
	Description string
	Status      int
	Cause       error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.Cause)
	}
	return e.Code + ": " + e.Description
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr, true
	}
	return nil, false
}

// IsKind reports whether err is an authorization failure of the given kind.
func IsKind(err error, kind Kind) bool {
	authErr, ok := AsError(err)
	return ok && authErr.Kind == kind
}

func errMissingHeader() *Error {
	return &Error{
		Kind:        KindMissingHeader,
		Code:        "authorization_header_missing",
		Description: "Authorization header is expected.",
		Status:      http.StatusUnauthorized,
	}
}

func errMalformedHeader(description string) *Error {
	return &Error{
		Kind:        KindMalformedHeader,
		Code:        "invalid_header",
		Description: description,
		Status:      http.StatusUnauthorized,
	}
}

func errInvalidToken(cause error) *Error {
	description := "Token could not be verified."
	switch {
	case errors.Is(cause, ErrKeyNotFound), errors.Is(cause, ErrDuplicateKeyID):
		description = "Unable to find the appropriate key."
	case errors.Is(cause, ErrTokenUnparseable), errors.Is(cause, ErrAlgorithmMismatch):
		description = "Unable to parse authentication token."
	}
	return &Error{
		Kind:        KindInvalidToken,
		Code:        "invalid_token",
		Description: description,
		Status:      http.StatusUnauthorized,
		Cause:       cause,
	}
}

func errTokenExpired(cause error) *Error {
	return &Error{
		Kind:        KindTokenExpired,
		Code:        "token_expired",
		Description: "Token expired.",
		Status:      http.StatusUnauthorized,
		Cause:       cause,
	}
}

func errIncorrectClaims(cause error) *Error {
	return &Error{
		Kind:        KindInvalidClaims,
		Code:        "invalid_claims",
		Description: "Incorrect claims. Please, check the audience and issuer.",
		Status:      http.StatusUnauthorized,
		Cause:       cause,
	}
}

func errPermissionsClaim(description string) *Error {
	return &Error{
		Kind:        KindInvalidClaims,
		Code:        "invalid_claims",
		Description: description,
		Status:      http.StatusBadRequest,
	}
}

func errForbidden() *Error {
	return &Error{
		Kind:        KindForbidden,
		Code:        "unauthorized",
		Description: "Permission not found.",
		Status:      http.StatusForbidden,
	}
}
