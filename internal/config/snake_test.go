package config

import "testing"

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"AppEnv":         "app_env",
		"JWKSURL":        "jwksurl",
		"JWKSCacheTTL":   "jwks_cache_ttl",
		"DevJWKSPrivate": "dev_jwks_private",
		"ClientID":       "client_id",
		"LogFormat":      "log_format",
		"Port":           "port",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := toSnakeCase(in); got != want {
				t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
			}
		})
	}
}
