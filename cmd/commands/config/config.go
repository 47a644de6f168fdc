package config

import (
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/config"
	"nathanbeddoewebdev/subdns/internal/dns/providers"
	"nathanbeddoewebdev/subdns/internal/services/auth"
)

// loadConfig returns the effective configuration, including a keychain
// token when CF_API_TOKEN is unset. Replaced in tests.
var loadConfig = func() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	_, cfg = providers.FromConfig(cfg, auth.DefaultStore(), logr.Discard())
	return cfg, nil
}

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect subdns configuration",
		Long: "Inspect the effective subdns configuration.\n\n" +
			"Settings come from the environment, optionally seeded from a .env file\n" +
			"in the working directory. Variables already set are never overridden.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(ShowCommand())

	return cmd
}
