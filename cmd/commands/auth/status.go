package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/dns/providers"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// getenv is replaced in tests.
var getenv = os.Getenv

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where the Cloudflare API token comes from",
		Long: `Show whether a Cloudflare API token is configured and whether it comes
from CF_API_TOKEN (including a .env file) or the keychain.

Example:
  subdns auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(); err != nil {
				return err
			}
			_, source, err := auth.Resolve(authStore(), providers.CloudflareTokenStore, getenv(config.EnvAPIToken))
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "cloudflare: error (%v)\n", err)
				return nil
			}

			switch source {
			case auth.SourceEnv:
				fmt.Fprintf(cmd.OutOrStdout(), "cloudflare: logged in (%s)\n", config.EnvAPIToken)
			case auth.SourceKeychain:
				fmt.Fprintln(cmd.OutOrStdout(), "cloudflare: logged in (keychain)")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "cloudflare: not logged in")
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
