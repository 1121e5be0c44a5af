package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hooklinehq/hookline/pkg/jwt"
)

var tokenTTL time.Duration

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Generate a personal API token for the operator API",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.Auth.TokenSecret == "" {
			return fmt.Errorf("auth.token_secret is not configured")
		}

		token, err := jwt.NewSigner(cfg.Auth.TokenSecret).Generate(args[0], tokenTTL)
		if err != nil {
			return err
		}

		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 30*24*time.Hour, "token lifetime")
}
