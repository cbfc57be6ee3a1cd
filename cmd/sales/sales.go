// Package sales provides the sales consolidation command.
package sales

import (
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/prompt"
	"github.com/klytics/finrep/internal/workflow"
)

// NewCommand returns the sales subcommand.
func NewCommand() *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Consolidate per-company sales extracts into a period report",
		Long: `Consolidate every sales extract in the input folder into one
"{period}. SalesReport.xlsx" workbook. The company of each extract is
derived from its file name (A-B-CompanyX.xlsx); hidden and lock files are
skipped, and previous reports move to history first.`,
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
			return workflow.NewEnv(cfg).Sales(p)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period used in the output name (prompted when omitted)")
	return cmd
}
