package auth

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/dns/providers"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the Cloudflare API token from the keychain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := authStore().DeleteToken(providers.CloudflareTokenStore)
			switch {
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), "No stored token.")
				return nil
			case err != nil:
				return fmt.Errorf("logout failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed Cloudflare API token")
			return nil
		},
		SilenceUsage: true,
	}
}
