package auth

import (
	"net/http"
	"strings"
)

// ExtractToken returns the token from an Authorization header value of the
// form "Bearer <token>". The scheme is matched case-insensitively.
func ExtractToken(header string) (string, error) {
	if header == "" {
		return "", errMissingHeader()
	}

	parts := strings.Fields(header)
	switch {
	case len(parts) == 0 || !strings.EqualFold(parts[0], "bearer"):
		return "", errMalformedHeader(`Authorization header must start with "Bearer".`)
	case len(parts) == 1:
		return "", errMalformedHeader("Token not found.")
	case len(parts) > 2:
		return "", errMalformedHeader("Authorization header must be bearer token.")
	}

	return parts[1], nil
}

// TokenFromRequest extracts the bearer token from r's Authorization header.
func TokenFromRequest(r *http.Request) (string, error) {
	return ExtractToken(r.Header.Get("Authorization"))
}
