package cmd

import (
	"os"

	"nathanbeddoewebdev/subdns/cmd/commands/audit"
	"nathanbeddoewebdev/subdns/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/subdns/cmd/commands/config"
	"nathanbeddoewebdev/subdns/cmd/commands/dns"
	"nathanbeddoewebdev/subdns/cmd/commands/serve"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "subdns",
		Short: "Create subdomain DNS records on Cloudflare",
		Long: `subdns creates DNS records under a fixed set of Cloudflare-hosted domains.
It runs as a small HTTP API for web front ends and offers the same
operations on the command line.

Quick start:
  subdns auth login                      # Store your Cloudflare API token
  subdns dns domains                     # List the configured domains
  subdns dns create --domain example.com --subdomain api --target 203.0.113.5
  subdns serve                           # Run the HTTP API`,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(serve.NewCommand())
	cmd.AddCommand(dns.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
