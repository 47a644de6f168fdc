package auth

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/dns/providers"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the Cloudflare API token in the keychain",
		Long: `Store the Cloudflare API token in the local keychain.

The token needs the Zone:DNS:Edit permission on every configured zone.

Examples:
  subdns auth login
  subdns auth login --token <token>`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			token, _ := cmd.Flags().GetString("token")
			token = strings.TrimSpace(token)
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Enter Cloudflare API token: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				token = strings.TrimSpace(string(bytes))
			}

			if token == "" {
				fmt.Fprintln(cmd.ErrOrStderr(), "token cannot be empty")
				return
			}

			if err := authStore().SetToken(providers.CloudflareTokenStore, token); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Saved Cloudflare API token")
		},
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}
