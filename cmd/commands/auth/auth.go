package auth

import (
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// authStore is replaced in tests.
var authStore = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Cloudflare API token",
		Long: `Manage the Cloudflare API token.

The token can come from CF_API_TOKEN or from the OS keychain. The
environment always wins; use these commands to store a keychain fallback.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
