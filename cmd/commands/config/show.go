package config

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/config"
)

type shownDomain struct {
	Name        string `json:"name"`
	ZoneID      string `json:"zoneId"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

type shownConfig struct {
	Settings map[string]string `json:"settings"`
	Domains  []shownDomain     `json:"domains"`
}

// ShowCommand returns the "config show" subcommand.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [variable]",
		Short: "Show effective settings and configured domains",
		Long: `Show the effective value of every setting and the domain registry.
Secrets are redacted.

Examples:
  subdns config show
  subdns config show CF_API_BASE_URL
  subdns config show -o json`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		spec := config.Lookup(args[0])
		if spec == nil {
			return fmt.Errorf("unknown variable %q\n\n%s", args[0], config.KeysHelp())
		}
		fmt.Fprintln(cmd.OutOrStdout(), spec.Display(cfg))
		return nil
	}

	shown := shownConfig{Settings: make(map[string]string, len(config.Keys))}
	for _, k := range config.Keys {
		shown.Settings[k.Name] = k.Display(cfg)
	}
	for _, e := range cfg.Domains.Entries() {
		shown.Domains = append(shown.Domains, shownDomain{
			Name:        e.Name,
			ZoneID:      e.ZoneID,
			Description: e.Description,
			Active:      e.ZoneID != "",
		})
	}

	if output == "json" {
		if shown.Domains == nil {
			shown.Domains = []shownDomain{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(shown)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIABLE\tVALUE")
	for _, k := range config.Keys {
		v := shown.Settings[k.Name]
		if v == "" {
			v = "(not set)"
		}
		fmt.Fprintf(w, "%s\t%s\n", k.Name, v)
	}
	w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
	if len(shown.Domains) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No domains configured.")
		return nil
	}

	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tZONE ID\tACTIVE\tDESCRIPTION")
	for _, d := range shown.Domains {
		zone := d.ZoneID
		if zone == "" {
			zone = "-"
		}
		desc := d.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", d.Name, zone, d.Active, desc)
	}
	w.Flush()
	return nil
}
