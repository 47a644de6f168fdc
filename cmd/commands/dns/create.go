package dns

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/dns/services"
)

// CreateCommand returns the "dns create" subcommand.
func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a DNS record",
		Long: `Create a DNS record <subdomain>.<domain> pointing at target.

When --type is omitted an IPv4 target creates an A record and anything else
a CNAME. Records are created with automatic TTL and without proxying.

Examples:
  subdns dns create --domain example.com --subdomain api --target 203.0.113.5
  subdns dns create --domain example.com --subdomain www --target origin.example.net
  subdns dns create --domain example.com --subdomain mail --target mx.example.net --type MX`,
		Args: cobra.NoArgs,
		Run:  runCreate,
	}

	cmd.Flags().String("domain", "", "Configured domain to create the record under [required]")
	cmd.Flags().String("subdomain", "", "Single-label subdomain [required]")
	cmd.Flags().String("target", "", "IPv4 address or hostname [required]")
	cmd.Flags().String("type", "", "Record type: A, CNAME, TXT, MX or NS (default: detected)")
	cmd.Flags().StringP("output", "o", "text", "Output format: text or json")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) {
	domainName, _ := cmd.Flags().GetString("domain")
	subdomain, _ := cmd.Flags().GetString("subdomain")
	target, _ := cmd.Flags().GetString("target")
	recordType, _ := cmd.Flags().GetString("type")
	output, _ := cmd.Flags().GetString("output")

	a, err := newDNSApp(cmd)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	defer a.Close()

	ctx := auditlog.WithMetadata(cmd.Context(), auditlog.Metadata{Source: auditlog.SourceCLI})
	res, err := a.Service.Submit(ctx, services.SubmitRequest{
		Domain:     domainName,
		Subdomain:  subdomain,
		RecordType: recordType,
		Target:     target,
	})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error creating record: %s\n", userMessage(err))
		return
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		_ = enc.Encode(res)
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	if res.Record != nil && res.Record.ID != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Record %s (%s %s -> %s)\n",
			res.Record.ID, res.Record.Type, res.Record.Name, res.Record.Content)
	}
}

// userMessage renders a service error the way the HTTP API would, with
// the status for context.
func userMessage(err error) string {
	var svcErr *services.Error
	if errors.As(err, &svcErr) {
		return fmt.Sprintf("%s (%d)", svcErr.Message, svcErr.Status)
	}
	return err.Error()
}
