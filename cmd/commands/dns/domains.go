package dns

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// DomainsCommand returns the "dns domains" subcommand.
func DomainsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List domains records can be created under",
		Long: `List the active domains from the domain registry (DOMAINS_FILE and
DNS_DOMAINS). Domains without a zone ID are not shown.

Example:
  subdns dns domains
  subdns dns domains -o json`,
		Args: cobra.NoArgs,
		Run:  runDomains,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runDomains(cmd *cobra.Command, args []string) {
	output, _ := cmd.Flags().GetString("output")

	a, err := newDNSApp(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer a.Close()

	domains, err := a.Service.ActiveDomains(cmd.Context())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error listing domains: %s\n", userMessage(err))
		return
	}

	switch output {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(domains)
		return
	case "table", "":
	default:
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unsupported output format %q\n", output)
		return
	}

	if len(domains) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No domains configured.")
		return
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tDESCRIPTION")
	fmt.Fprintln(w, "------\t-----------")

	for _, d := range domains {
		desc := d.Description
		if desc == "" {
			desc = "-"
		}
		fmt.Fprintf(w, "%s\t%s\n", d.Name, desc)
	}

	w.Flush()
}
