package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jrschumacher/casting-agency/internal/jwtutil"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/spf13/cobra"
)

var utilCmd = &cobra.Command{
	Use:     "util",
	Aliases: []string{"utils"},
	Short:   "Utility commands for local development",
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

var (
	keyID          string
	publicKeyFile  string
	privateKeyFile string
	permissions    []string
	subject        string
	tokenTTL       time.Duration
)

var utilGenerateJWKCmd = &cobra.Command{
	Use:   "generate-jwk",
	Short: "Generate an RSA signing key for a local identity provider",
	RunE: func(_ *cobra.Command, _ []string) error {
		key, err := jwtutil.GenerateRSAKey(keyID, jwa.SignatureAlgorithm(cfg.AuthAlgorithm))
		if err != nil {
			return err
		}

		pubKey, err := key.PublicKey()
		if err != nil {
			return fmt.Errorf("failed to get public key: %w", err)
		}

		if err := writeKeySet(publicKeyFile, pubKey); err != nil {
			return err
		}
		if err := writeKeySet(privateKeyFile, key); err != nil {
			return err
		}

		fmt.Printf("JWKs written to %s and %s\n", publicKeyFile, privateKeyFile)
		fmt.Printf("Serve the public set with DEV_JWKS=\"$(cat %s)\"\n", publicKeyFile)
		return nil
	},
}

var utilMintTokenCmd = &cobra.Command{
	Use:   "mint-token",
	Short: "Sign a development token with the private JWKS",
	RunE: func(_ *cobra.Command, _ []string) error {
		key, err := loadSigningKey()
		if err != nil {
			return err
		}

		var audience []string
		if cfg.AuthAudience != "" {
			audience = []string{cfg.AuthAudience}
		}
		token, err := jwtutil.SignToken(key, jwa.SignatureAlgorithm(cfg.AuthAlgorithm), jwtutil.TokenParams{
			Issuer:      cfg.Issuer(),
			Audience:    audience,
			Subject:     subject,
			Permissions: permissions,
			TTL:         tokenTTL,
		})
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var utilInspectTokenCmd = &cobra.Command{
	Use:   "inspect-token <token>",
	Short: "Print a token's claims without verifying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		raw := strings.TrimSpace(strings.TrimPrefix(args[0], "Bearer "))
		header, err := jwtutil.ParseHeader(raw)
		if err != nil {
			return err
		}
		claims, err := jwtutil.ParseJWTWithoutVerification(raw)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(struct {
			KeyID     string             `json:"kid"`
			Algorithm string             `json:"alg"`
			Claims    *jwtutil.JWTClaims `json:"claims"`
		}{header.KeyID, header.Algorithm.String(), claims}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func writeKeySet(path string, key jwk.Key) error {
	set := jwk.NewSet()
	if err := set.AddKey(key); err != nil {
		return err
	}
	buf, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// loadSigningKey reads the first key of DEV_JWKS_PRIVATE, or of the private
// key file when the variable is unset.
func loadSigningKey() (jwk.Key, error) {
	raw := []byte(cfg.DevJWKSPrivate)
	if len(raw) == 0 {
		var err error
		raw, err = os.ReadFile(privateKeyFile)
		if err != nil {
			return nil, fmt.Errorf("no private JWKS configured: %w", err)
		}
	}
	set, err := jwk.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private JWKS: %w", err)
	}
	key, ok := set.Key(0)
	if !ok {
		return nil, fmt.Errorf("private JWKS contains no keys")
	}
	return key, nil
}

func init() {
	rootCmd.AddCommand(utilCmd)
	utilCmd.AddCommand(utilGenerateJWKCmd, utilMintTokenCmd, utilInspectTokenCmd)

	utilCmd.PersistentFlags().StringVar(&privateKeyFile, "private", "jwks.private.json", "private JWKS file")
	utilGenerateJWKCmd.Flags().StringVar(&publicKeyFile, "public", "jwks.public.json", "public JWKS file")
	utilGenerateJWKCmd.Flags().StringVar(&keyID, "kid", "casting-dev-key", "key id")

	utilMintTokenCmd.Flags().StringSliceVar(&permissions, "permissions", nil, "comma separated permissions, e.g. get:actors,get:movies")
	utilMintTokenCmd.Flags().StringVar(&subject, "sub", "dev|casting", "subject claim")
	utilMintTokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
}
