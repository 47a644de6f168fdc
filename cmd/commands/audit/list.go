package audit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/auditlog"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent submissions",
		Long: `List recent DNS record submissions, newest first.

Examples:
  subdns audit list
  subdns audit list --limit 50
  subdns audit list --domain example.com
  subdns audit list -o json`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("domain", "", "Only show submissions for this domain")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}

	domainName, _ := cmd.Flags().GetString("domain")
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = "table"
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	repo, err := openRepo()
	if err != nil {
		return err
	}
	defer repo.Close()

	var entries []auditlog.AuditEntry
	if domainName != "" {
		entries, err = repo.ListByDomain(domainName, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		if entries == nil {
			entries = []auditlog.AuditEntry{}
		}
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit entries found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSOURCE\tNAME\tTYPE\tTARGET\tOUTCOME\tSTATUS\tDURATION\tDETAIL")
	fmt.Fprintln(w, "----\t------\t----\t----\t------\t-------\t------\t--------\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			orDash(entry.Source),
			orDash(recordName(entry)),
			orDash(entry.RecordType),
			orDash(entry.Target),
			entry.Outcome,
			formatStatus(entry.Status),
			formatDuration(entry.DurationMs),
			orDash(entry.Detail),
		)
	}
	w.Flush()
	return nil
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh", int(d.Hours()))
}

// recordName prefers the name the record was created under and falls back
// to what was submitted.
func recordName(entry auditlog.AuditEntry) string {
	if entry.RecordName != "" {
		return entry.RecordName
	}
	switch {
	case entry.Subdomain != "" && entry.Domain != "":
		return entry.Subdomain + "." + entry.Domain
	case entry.Domain != "":
		return entry.Domain
	}
	return entry.Subdomain
}

func formatStatus(status int) string {
	if status == 0 {
		return "-"
	}
	return strconv.Itoa(status)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
