// Package clients provides the client-status report command.
package clients

import (
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/workflow"
)

// NewCommand returns the clients subcommand.
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clients",
		Short: "Rebuild the client-status/alerts workbook in place",
		Long: `Rebuild the first workbook found in the client report directory:
a filtered "Clients by status" sheet, an ALERTS sheet with the
installment-contract and non-recurring client filters, and a Summary
pivot, with the three sheets moved to the front.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			return workflow.NewEnv(cfg).Clients()
		},
	}
}
