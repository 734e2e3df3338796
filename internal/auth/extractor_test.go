package auth_test

import (
	"net/http/httptest"
	"testing"

	"github.com/jrschumacher/casting-agency/internal/auth"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		want     string
		wantKind auth.Kind
		wantDesc string
	}{
		{name: "valid", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lower case scheme", header: "bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "mixed case scheme", header: "BeArEr tok", want: "tok"},
		{name: "extra whitespace", header: "  Bearer    tok  ", want: "tok"},
		{name: "missing", header: "", wantKind: auth.KindMissingHeader, wantDesc: "Authorization header is expected."},
		{name: "whitespace only", header: "   ", wantKind: auth.KindMalformedHeader, wantDesc: `Authorization header must start with "Bearer".`},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantKind: auth.KindMalformedHeader, wantDesc: `Authorization header must start with "Bearer".`},
		{name: "bare token", header: "abc.def.ghi", wantKind: auth.KindMalformedHeader, wantDesc: `Authorization header must start with "Bearer".`},
		{name: "no token", header: "Bearer", wantKind: auth.KindMalformedHeader, wantDesc: "Token not found."},
		{name: "no token trailing space", header: "Bearer ", wantKind: auth.KindMalformedHeader, wantDesc: "Token not found."},
		{name: "two tokens", header: "Bearer abc def", wantKind: auth.KindMalformedHeader, wantDesc: "Authorization header must be bearer token."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.ExtractToken(tt.header)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("ExtractToken(%q) error = %v", tt.header, err)
				}
				if got != tt.want {
					t.Errorf("ExtractToken(%q) = %q, want %q", tt.header, got, tt.want)
				}
				return
			}

			authErr, ok := auth.AsError(err)
			if !ok {
				t.Fatalf("ExtractToken(%q) error = %v, want *auth.Error", tt.header, err)
			}
			if authErr.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", authErr.Kind, tt.wantKind)
			}
			if authErr.Status != 401 {
				t.Errorf("Status = %d, want 401", authErr.Status)
			}
			if authErr.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", authErr.Description, tt.wantDesc)
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/actors", nil)
	if _, err := auth.TokenFromRequest(r); !auth.IsKind(err, auth.KindMissingHeader) {
		t.Fatalf("expected MissingHeader, got %v", err)
	}

	r.Header.Set("Authorization", "Bearer tok")
	got, err := auth.TokenFromRequest(r)
	if err != nil || got != "tok" {
		t.Fatalf("TokenFromRequest() = %q, %v", got, err)
	}
}
