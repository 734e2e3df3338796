package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/jrschumacher/casting-agency/internal/auth"
	"github.com/jrschumacher/casting-agency/internal/logger"
	"github.com/spf13/viper"
)

const (
	EnvProd = "production"
	EnvDev  = "development"
	EnvTest = "test"
)

// Config holds application configuration loaded from environment variables or config file.
type Config struct {
	AppEnv string `mapstructure:"app_env" default:"development" validate:"required,oneof=production development test"`
	Port   string `mapstructure:"port" default:"8080" validate:"required,numeric"`

	// Storage
	DatabaseURL string `secret:"true" mapstructure:"database_url" default:"file:casting.db" validate:"required"`

	// Identity provider
	AuthDomain    string        `mapstructure:"auth_domain" validate:"required"`
	AuthAudience  string        `mapstructure:"auth_audience" validate:"required"`
	AuthAlgorithm string        `mapstructure:"auth_algorithm" default:"RS256" validate:"oneof=RS256 RS384 RS512 PS256 PS384 PS512 ES256 ES384 ES512"`
	JWKSURL       string        `mapstructure:"jwks_url" validate:"omitempty,url"`
	JWKSTimeout   time.Duration `mapstructure:"jwks_timeout" default:"5s" validate:"gt=0"`
	JWKSCacheTTL  time.Duration `mapstructure:"jwks_cache_ttl" default:"0s" validate:"gte=0"`
	ClientID      string        `mapstructure:"client_id"`
	ClientSecret  string        `secret:"true" mapstructure:"client_secret"`

	// Local signing material, development only
	DevJWKS        string `mapstructure:"dev_jwks"`
	DevJWKSPrivate string `secret:"true" mapstructure:"dev_jwks_private"`

	// Logging
	LogLevel  string `mapstructure:"log_level" default:"INFO" validate:"oneof=DEBUG INFO WARN ERROR"`
	LogFormat string `mapstructure:"log_format" default:"text" validate:"oneof=text json"`
}

const redacted = "***REDACTED***"

// Load reads config.yaml from the working directory or ./config, then lets
// environment variables override it. Struct defaults fill whatever is left.
func Load() *Config {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		panic("failed to set struct defaults: " + err.Error())
	}

	v := newViper()
	bindEnv(v, reflect.TypeOf(cfg))

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case errors.As(err, &notFound):
		logger.Warn("No config file found, using environment variables")
	case err != nil:
		logger.Error("Failed to read config file", "error", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		logger.Warn("Could not unmarshal config", "error", err)
	}

	logger.Info("Loaded config", "config", cfg.String())
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	v.AutomaticEnv()
	return v
}

// bindEnv registers every field so Unmarshal sees env-only values.
func bindEnv(v *viper.Viper, t reflect.Type) {
	for _, f := range reflect.VisibleFields(t) {
		key := f.Tag.Get("mapstructure")
		if key == "" {
			key = toSnakeCase(f.Name)
		}
		_ = v.BindEnv(key)
	}
}

// Validate checks cfg against its validate tags.
func Validate(cfg *Config) error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

// Issuer is the expected "iss" claim: the identity provider URL with a trailing slash.
func (c *Config) Issuer() string {
	if c.AuthDomain == "" {
		return ""
	}
	return "https://" + strings.TrimSuffix(c.AuthDomain, "/") + "/"
}

// KeySetURL returns the configured JWKS endpoint, falling back to the
// identity provider's well-known location.
func (c *Config) KeySetURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	if c.AuthDomain == "" {
		return ""
	}
	return c.Issuer() + ".well-known/jwks.json"
}

// AuthConfig builds the immutable authorization settings handed to the verifier.
func (c *Config) AuthConfig() auth.Config {
	return auth.NewConfig(auth.Settings{
		Issuer:       c.Issuer(),
		Audience:     c.AuthAudience,
		Algorithm:    c.AuthAlgorithm,
		JWKSURL:      c.KeySetURL(),
		FetchTimeout: c.JWKSTimeout,
		CacheTTL:     c.JWKSCacheTTL,
	})
}

// String renders the config for logs. Fields tagged secret:"true" are redacted.
func (c *Config) String() string {
	rv := reflect.ValueOf(*c)
	fields := reflect.VisibleFields(rv.Type())
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f.Name+": "+fieldValue(f, rv.FieldByIndex(f.Index)))
	}
	return "Config{" + strings.Join(parts, ", ") + "}"
}

func fieldValue(f reflect.StructField, v reflect.Value) string {
	if f.Tag.Get("secret") == "true" {
		return redacted
	}
	if s, ok := v.Interface().(string); ok {
		return s
	}
	return fmt.Sprint(v.Interface())
}

// toSnakeCase converts CamelCase to snake_case
func toSnakeCase(str string) string {
	runes := []rune(str)
	var out []rune
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if !unicode.IsUpper(prev) || nextLower {
				out = append(out, '_')
			}
		}
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}
