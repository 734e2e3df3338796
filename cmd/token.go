package cmd

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2/clientcredentials"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Fetch an access token from the identity provider with client credentials",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.AuthDomain == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
			return fmt.Errorf("AUTH_DOMAIN, CLIENT_ID and CLIENT_SECRET must be set")
		}

		conf := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.Issuer() + "oauth/token",
			EndpointParams: url.Values{
				"audience": {cfg.AuthAudience},
			},
		}

		tok, err := conf.Token(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch token: %w", err)
		}
		fmt.Println(tok.AccessToken)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
