// Package expense provides the expense ledger split command.
package expense

import (
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/prompt"
	"github.com/klytics/finrep/internal/workflow"
)

// NewCommand returns the expense subcommand.
func NewCommand() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "expense",
		Short: "Split the master expense ledger into per-owner workbooks",
		Long: `Split the master expense ledger by cost-center owner: previous
reports move to history, one workbook per owner is generated from the
expense template, each is handed to the recalculation service, and the
period total is printed at the end.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			p, err := prompt.Resolve(period, "period (e.g. '2023-12')")
			if err != nil {
				return err
			}
			return workflow.NewEnv(cfg).Expense(cmd.Context(), p)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period used in the output names (prompted when omitted)")
	return cmd
}
