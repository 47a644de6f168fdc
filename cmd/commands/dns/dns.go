package dns

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/app"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// Seams replaced by tests.
var (
	newApp    = app.New
	authStore = auth.DefaultStore
)

// NewCommand returns the top-level "dns" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Create DNS records on the configured domains",
		Long: `Create DNS records on the configured domains and list which domains are
available. Commands run the same validation as the HTTP API and talk to
Cloudflare directly.`,
	}

	cmd.AddCommand(DomainsCommand())
	cmd.AddCommand(CreateCommand())

	return cmd
}

// newDNSApp builds the service for a dns subcommand. Logging stays quiet
// unless --verbose is set so command output is not interleaved with logs.
func newDNSApp(cmd *cobra.Command) (*app.App, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	opts := app.Options{Store: authStore(), Verbose: verbose}
	if !verbose {
		discard := logr.Discard()
		opts.Log = &discard
	}
	return newApp(opts)
}
