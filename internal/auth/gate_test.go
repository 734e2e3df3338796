package auth_test

import (
	"net/http"
	"testing"

	"github.com/jrschumacher/casting-agency/internal/auth"
)

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name       string
		claims     *auth.ClaimSet
		permission string
		wantKind   auth.Kind
		wantStatus int
		wantDesc   string
	}{
		{
			name:       "granted",
			claims:     &auth.ClaimSet{State: auth.PermissionsPresent, Permissions: []string{"get:actors", "delete:actors"}},
			permission: "delete:actors",
		},
		{
			name:       "absent",
			claims:     &auth.ClaimSet{State: auth.PermissionsAbsent},
			permission: "get:actors",
			wantKind:   auth.KindInvalidClaims,
			wantStatus: http.StatusBadRequest,
			wantDesc:   "Permissions not included in JWT.",
		},
		{
			name:       "null",
			claims:     &auth.ClaimSet{State: auth.PermissionsNull},
			permission: "get:actors",
			wantKind:   auth.KindInvalidClaims,
			wantStatus: http.StatusBadRequest,
			wantDesc:   "Permissions field is null in JWT payload",
		},
		{
			name:       "empty",
			claims:     &auth.ClaimSet{State: auth.PermissionsPresent, Permissions: []string{}},
			permission: "get:actors",
			wantKind:   auth.KindInvalidClaims,
			wantStatus: http.StatusBadRequest,
			wantDesc:   "Permissions field is null in JWT payload",
		},
		{
			name:       "not granted",
			claims:     &auth.ClaimSet{State: auth.PermissionsPresent, Permissions: []string{"get:actors"}},
			permission: "post:actors",
			wantKind:   auth.KindForbidden,
			wantStatus: http.StatusForbidden,
			wantDesc:   "Permission not found.",
		},
		{
			name:       "prefix is not a match",
			claims:     &auth.ClaimSet{State: auth.PermissionsPresent, Permissions: []string{"get:actor"}},
			permission: "get:actors",
			wantKind:   auth.KindForbidden,
			wantStatus: http.StatusForbidden,
			wantDesc:   "Permission not found.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.CheckPermission(tt.permission, tt.claims)
			if tt.wantKind == 0 {
				if err != nil {
					t.Fatalf("CheckPermission error: %v", err)
				}
				return
			}
			authErr, ok := auth.AsError(err)
			if !ok {
				t.Fatalf("error = %v, want *auth.Error", err)
			}
			if authErr.Kind != tt.wantKind || authErr.Status != tt.wantStatus || authErr.Description != tt.wantDesc {
				t.Errorf("got (%v, %d, %q), want (%v, %d, %q)",
					authErr.Kind, authErr.Status, authErr.Description, tt.wantKind, tt.wantStatus, tt.wantDesc)
			}
		})
	}
}
