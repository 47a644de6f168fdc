package audit

import (
	"os"

	"github.com/spf13/cobra"

	"nathanbeddoewebdev/subdns/internal/auditlog"
	"nathanbeddoewebdev/subdns/internal/config"
)

// NewCommand returns the "audit" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "View and manage the submission audit trail",
		Long: "View the local audit trail of DNS record submissions and prune old entries.\n\n" +
			"Entries are stored in ~/.config/subdns/subdns.db unless AUDIT_DB_PATH is set.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}

// openRepo opens the audit database the server writes to, honouring an
// AUDIT_DB_PATH set in .env.
func openRepo() (*auditlog.SQLiteRepository, error) {
	if err := config.LoadEnv(); err != nil {
		return nil, err
	}
	return auditlog.Open(os.Getenv(config.EnvAuditDBPath))
}
